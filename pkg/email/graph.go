package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	graphScope        = "https://graph.microsoft.com/.default"
	microsoftLoginURL = "https://login.microsoftonline.com"
)

// GraphConfig holds the app registration used for client-credentials mail
type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// Sender is the mailbox the app sends as
	Sender  string
	BaseURL string
	// TokenURL overrides the Microsoft identity endpoint
	TokenURL string
}

// GraphSender sends through Microsoft Graph sendMail
type GraphSender struct {
	cfg    GraphConfig
	tokens oauth2.TokenSource
	client *http.Client
}

// NewGraphSender creates a Graph sender. client may be nil.
func NewGraphSender(cfg GraphConfig, client *http.Client) *GraphSender {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.microsoft.com/v1.0"
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = tokenURL(cfg.TenantID)
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       []string{graphScope},
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
	return &GraphSender{cfg: cfg, tokens: cc.TokenSource(tokenCtx), client: client}
}

func tokenURL(tenantID string) string {
	return microsoftLoginURL + "/" + url.PathEscape(tenantID) + "/oauth2/v2.0/token"
}

func (g *GraphSender) Name() string { return "graph" }

func (g *GraphSender) Configured() bool {
	return g.cfg.TenantID != "" && g.cfg.ClientID != "" && g.cfg.ClientSecret != "" && g.cfg.Sender != ""
}

type graphAddress struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
}

type graphAttachment struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
}

type graphMessage struct {
	Subject string `json:"subject"`
	Body    struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	ToRecipients []graphAddress    `json:"toRecipients"`
	Attachments  []graphAttachment `json:"attachments,omitempty"`
}

type graphSendMailRequest struct {
	Message         graphMessage `json:"message"`
	SaveToSentItems bool         `json:"saveToSentItems"`
}

func (g *GraphSender) Send(ctx context.Context, msg Message) error {
	token, err := g.tokens.Token()
	if err != nil {
		return fmt.Errorf("graph token: %w", err)
	}

	payload := graphSendMailRequest{SaveToSentItems: true}
	payload.Message.Subject = msg.Subject
	payload.Message.Body.ContentType = "HTML"
	payload.Message.Body.Content = msg.HTML
	for _, to := range msg.To {
		var addr graphAddress
		addr.EmailAddress.Address = to
		payload.Message.ToRecipients = append(payload.Message.ToRecipients, addr)
	}
	for _, a := range msg.Attachments {
		payload.Message.Attachments = append(payload.Message.Attachments, graphAttachment{
			ODataType:    "#microsoft.graph.fileAttachment",
			Name:         a.Filename,
			ContentType:  contentTypeOf(a),
			ContentBytes: base64.StdEncoding.EncodeToString(a.Data),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("graph payload: %w", err)
	}

	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + "/users/" + url.PathEscape(g.cfg.Sender) + "/sendMail"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("graph sendMail returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func contentTypeOf(a Attachment) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	return "application/octet-stream"
}
