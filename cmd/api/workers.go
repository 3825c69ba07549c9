package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sangkips/catering-api/internal/config"
	domainRepo "github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/pkg/email"
	"go.uber.org/zap"
)

// buildMailChain assembles the senders in the configured provider order.
// Unknown provider names are logged and skipped.
func buildMailChain(cfg *config.MailConfig, log *zap.Logger) *email.Chain {
	from := email.From{Address: cfg.FromAddress, Name: cfg.FromName}
	client := &http.Client{Timeout: cfg.Timeout}

	var senders []email.Sender
	for _, name := range cfg.Providers {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "graph":
			senders = append(senders, email.NewGraphSender(email.GraphConfig{
				TenantID:     cfg.Graph.TenantID,
				ClientID:     cfg.Graph.ClientID,
				ClientSecret: cfg.Graph.ClientSecret,
				Sender:       cfg.Graph.Sender,
				BaseURL:      cfg.Graph.BaseURL,
			}, client))
		case "azure_smtp":
			senders = append(senders, email.NewAzureSMTPSender(email.AzureSMTPConfig{
				Host:         cfg.AzureSMTP.Host,
				Port:         cfg.AzureSMTP.Port,
				Username:     cfg.AzureSMTP.Username,
				TenantID:     cfg.AzureSMTP.TenantID,
				ClientID:     cfg.AzureSMTP.ClientID,
				ClientSecret: cfg.AzureSMTP.ClientSecret,
			}, from))
		case "smtp":
			senders = append(senders, email.NewSMTPSender(email.SMTPConfig{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
			}, from))
		case "":
		default:
			log.Warn("unknown mail provider ignored", zap.String("provider", name))
		}
	}

	return email.NewChain(log.Named("mail"), senders...)
}

// purgeIdempotencyKeys deletes expired idempotency keys every interval until
// ctx is done.
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				zap.L().Warn("failed to purge idempotency keys", zap.Error(err))
			}
		}
	}
}
