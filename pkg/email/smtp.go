package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const outlookScope = "https://outlook.office365.com/.default"

// SMTPConfig holds the connection settings for an SMTP relay
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// AzureSMTPConfig holds the settings for Office 365 SMTP with XOAUTH2
type AzureSMTPConfig struct {
	Host         string
	Port         int
	Username     string
	TenantID     string
	ClientID     string
	ClientSecret string
	// TokenURL overrides the Microsoft identity endpoint
	TokenURL string
}

// SMTPSender sends through an SMTP relay, upgrading with STARTTLS when offered
type SMTPSender struct {
	name       string
	host       string
	port       int
	from       From
	configured bool
	auth       func(ctx context.Context) (smtp.Auth, error)
}

// NewSMTPSender creates a sender that authenticates with PLAIN
func NewSMTPSender(cfg SMTPConfig, from From) *SMTPSender {
	return &SMTPSender{
		name:       "smtp",
		host:       cfg.Host,
		port:       cfg.Port,
		from:       from,
		configured: cfg.Host != "" && from.Address != "",
		auth: func(context.Context) (smtp.Auth, error) {
			if cfg.Username == "" {
				return nil, nil
			}
			return smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host), nil
		},
	}
}

// NewAzureSMTPSender creates a sender that authenticates with XOAUTH2 using
// a client-credentials token
func NewAzureSMTPSender(cfg AzureSMTPConfig, from From) *SMTPSender {
	if cfg.TokenURL == "" {
		cfg.TokenURL = tokenURL(cfg.TenantID)
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       []string{outlookScope},
	}
	tokens := cc.TokenSource(context.Background())

	username := cfg.Username
	if username == "" {
		username = from.Address
	}
	return &SMTPSender{
		name: "azure_smtp",
		host: cfg.Host,
		port: cfg.Port,
		from: from,
		configured: cfg.Host != "" && cfg.TenantID != "" && cfg.ClientID != "" &&
			cfg.ClientSecret != "" && username != "" && from.Address != "",
		auth: func(context.Context) (smtp.Auth, error) {
			token, err := tokens.Token()
			if err != nil {
				return nil, fmt.Errorf("azure smtp token: %w", err)
			}
			return XOAuth2(username, token), nil
		},
	}
}

func (s *SMTPSender) Name() string { return s.name }

func (s *SMTPSender) Configured() bool { return s.configured }

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	auth, err := s.auth(ctx)
	if err != nil {
		return err
	}

	raw, err := buildMIME(s.from, msg)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if auth != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return fmt.Errorf("smtp auth: %s does not advertise AUTH", addr)
		}
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := c.Mail(s.from.Address); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, to := range msg.To {
		if err := c.Rcpt(to); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", to, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return c.Quit()
}

type xoauth2Auth struct {
	username string
	token    string
}

// XOAuth2 returns an smtp.Auth for the XOAUTH2 SASL mechanism
func XOAuth2(username string, token *oauth2.Token) smtp.Auth {
	return &xoauth2Auth{username: username, token: token.AccessToken}
}

func (a *xoauth2Auth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if !server.TLS && !isLocalhost(server.Name) {
		return "", nil, errors.New("xoauth2 requires an encrypted connection")
	}
	return "XOAUTH2", []byte("user=" + a.username + "\x01auth=Bearer " + a.token + "\x01\x01"), nil
}

// Next answers the server's error challenge with an empty response so it
// can finish the exchange with a failure status.
func (a *xoauth2Auth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return []byte{}, nil
	}
	return nil, nil
}

func isLocalhost(name string) bool {
	return name == "localhost" || name == "127.0.0.1" || name == "::1"
}
