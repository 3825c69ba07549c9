// Package email delivers HTML mail through an ordered chain of providers:
// Microsoft Graph, Azure SMTP with XOAUTH2 and plain SMTP.
package email

import (
	"context"
	"errors"
	"strings"
)

// ErrNotConfigured is returned when no provider in the chain has credentials.
var ErrNotConfigured = errors.New("email: no provider configured")

// Attachment is a file sent along with a message
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a single outgoing HTML email
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Validate checks the message has recipients and a subject
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return errors.New("email: message has no recipients")
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" || !strings.Contains(to, "@") {
			return errors.New("email: invalid recipient " + to)
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("email: message has no subject")
	}
	return nil
}

// Sender delivers messages through one provider
type Sender interface {
	// Name identifies the provider in logs and metrics
	Name() string
	// Configured reports whether the provider has the credentials it needs
	Configured() bool
	Send(ctx context.Context, msg Message) error
}

// From is the envelope sender shared by all providers
type From struct {
	Address string
	Name    string
}

func (f From) header() string {
	if f.Name == "" {
		return f.Address
	}
	return encodeHeader(f.Name) + " <" + f.Address + ">"
}
