package email

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Chain tries each configured sender in order until one succeeds
type Chain struct {
	senders []Sender
	log     *zap.Logger
}

// NewChain builds a chain over senders. Unconfigured senders are skipped at
// send time, so the order of the arguments is the failover order.
func NewChain(log *zap.Logger, senders ...Sender) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{senders: senders, log: log}
}

// Configured reports whether at least one sender can deliver
func (c *Chain) Configured() bool {
	for _, s := range c.senders {
		if s.Configured() {
			return true
		}
	}
	return false
}

// Providers lists the names of configured senders in order
func (c *Chain) Providers() []string {
	var names []string
	for _, s := range c.senders {
		if s.Configured() {
			names = append(names, s.Name())
		}
	}
	return names
}

// Send delivers msg through the first sender that accepts it and returns
// that sender's name. When every sender fails the errors are joined.
func (c *Chain) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	var errs []error
	for _, s := range c.senders {
		if !s.Configured() {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := s.Send(ctx, msg)
		if err == nil {
			return s.Name(), nil
		}
		c.log.Warn("email provider failed",
			zap.String("provider", s.Name()),
			zap.Strings("to", msg.To),
			zap.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}

	if len(errs) == 0 {
		return "", ErrNotConfigured
	}
	return "", errors.Join(errs...)
}
