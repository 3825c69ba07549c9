package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeSender struct {
	name       string
	configured bool
	err        error
	sent       []Message
}

func (f *fakeSender) Name() string     { return f.name }
func (f *fakeSender) Configured() bool { return f.configured }
func (f *fakeSender) Send(_ context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testMessage() Message {
	return Message{To: []string{"dana@example.com"}, Subject: "Your quote", HTML: "<p>Hello</p>"}
}

func TestChainSkipsUnconfiguredAndFailsOver(t *testing.T) {
	graph := &fakeSender{name: "graph", configured: true, err: errors.New("throttled")}
	azure := &fakeSender{name: "azure_smtp"}
	smtpSender := &fakeSender{name: "smtp", configured: true}

	chain := NewChain(nil, graph, azure, smtpSender)
	provider, err := chain.Send(context.Background(), testMessage())

	require.NoError(t, err)
	require.Equal(t, "smtp", provider)
	require.Len(t, smtpSender.sent, 1)
	require.Empty(t, azure.sent)
	require.Equal(t, []string{"graph", "smtp"}, chain.Providers())
}

func TestChainJoinsErrorsWhenAllFail(t *testing.T) {
	chain := NewChain(nil,
		&fakeSender{name: "graph", configured: true, err: errors.New("401")},
		&fakeSender{name: "smtp", configured: true, err: errors.New("connection refused")},
	)

	_, err := chain.Send(context.Background(), testMessage())

	require.Error(t, err)
	require.Contains(t, err.Error(), "graph: 401")
	require.Contains(t, err.Error(), "smtp: connection refused")
}

func TestChainNotConfigured(t *testing.T) {
	chain := NewChain(nil, &fakeSender{name: "graph"})

	require.False(t, chain.Configured())
	_, err := chain.Send(context.Background(), testMessage())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestChainRejectsInvalidMessage(t *testing.T) {
	sender := &fakeSender{name: "smtp", configured: true}
	chain := NewChain(nil, sender)

	_, err := chain.Send(context.Background(), Message{To: []string{"not-an-address"}, Subject: "x"})
	require.Error(t, err)

	_, err = chain.Send(context.Background(), Message{To: []string{"a@example.com"}})
	require.Error(t, err)
	require.Empty(t, sender.sent)
}

func TestRender(t *testing.T) {
	subject, body, err := Render(
		"Quote {{.Reference}}\r\nBcc: attacker@example.com",
		"<p>Hi {{.Name}}</p>{{.Missing}}",
		map[string]string{"Reference": "QT-000042", "Name": "<script>x</script>"},
	)

	require.NoError(t, err)
	require.Equal(t, "Quote QT-000042 Bcc: attacker@example.com", subject)
	require.Contains(t, body, "&lt;script&gt;")
	require.NotContains(t, body, "<script>")

	_, _, err = Render("{{.Broken", "", nil)
	var tplErr *TemplateError
	require.ErrorAs(t, err, &tplErr)
	require.Equal(t, "subject", tplErr.Part)

	err = Parse("Hi {{.Name}}", "<p>{{if .X}}</p>")
	require.ErrorAs(t, err, &tplErr)
	require.Equal(t, "body", tplErr.Part)
	require.NoError(t, Parse("Hi {{.Name}}", "<p>{{.Body}}</p>"))
}

func TestGraphSender(t *testing.T) {
	var got graphSendMailRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"graph-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/users/events@example.com/sendMail", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer graph-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sender := NewGraphSender(GraphConfig{
		TenantID: "tenant", ClientID: "client", ClientSecret: "secret",
		Sender: "events@example.com", BaseURL: srv.URL, TokenURL: srv.URL + "/token",
	}, srv.Client())
	require.True(t, sender.Configured())

	msg := testMessage()
	msg.Attachments = []Attachment{{Filename: "QT-000042.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}}
	require.NoError(t, sender.Send(context.Background(), msg))

	require.Equal(t, "Your quote", got.Message.Subject)
	require.Equal(t, "HTML", got.Message.Body.ContentType)
	require.Equal(t, "dana@example.com", got.Message.ToRecipients[0].EmailAddress.Address)
	require.Len(t, got.Message.Attachments, 1)
	require.Equal(t, "#microsoft.graph.fileAttachment", got.Message.Attachments[0].ODataType)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")), got.Message.Attachments[0].ContentBytes)
}

func TestGraphSenderReportsUpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"t","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":"ErrorAccessDenied"}}`, http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sender := NewGraphSender(GraphConfig{
		TenantID: "t", ClientID: "c", ClientSecret: "s", Sender: "events@example.com",
		BaseURL: srv.URL, TokenURL: srv.URL + "/token",
	}, srv.Client())

	err := sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
	require.Contains(t, err.Error(), "ErrorAccessDenied")
}

func TestGraphSenderNotConfiguredWithoutSender(t *testing.T) {
	sender := NewGraphSender(GraphConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}, nil)
	require.False(t, sender.Configured())
}

func TestAzureSMTPConfigured(t *testing.T) {
	from := From{Address: "events@example.com"}

	require.True(t, NewAzureSMTPSender(AzureSMTPConfig{
		Host: "smtp.office365.com", Port: 587, TenantID: "t", ClientID: "c", ClientSecret: "s",
	}, from).Configured())
	require.False(t, NewAzureSMTPSender(AzureSMTPConfig{Host: "smtp.office365.com", Port: 587}, from).Configured())
	require.Equal(t, "azure_smtp", NewAzureSMTPSender(AzureSMTPConfig{}, from).Name())
}

func TestXOAuth2(t *testing.T) {
	auth := XOAuth2("events@example.com", &oauth2.Token{AccessToken: "abc"})

	mech, resp, err := auth.Start(&smtp.ServerInfo{Name: "smtp.office365.com", TLS: true})
	require.NoError(t, err)
	require.Equal(t, "XOAUTH2", mech)
	require.Equal(t, "user=events@example.com\x01auth=Bearer abc\x01\x01", string(resp))

	_, _, err = auth.Start(&smtp.ServerInfo{Name: "smtp.office365.com"})
	require.Error(t, err)

	next, err := auth.Next([]byte(`{"status":"401"}`), true)
	require.NoError(t, err)
	require.Empty(t, next)
}

// serveSMTP accepts one connection and records the DATA payload.
func serveSMTP(t *testing.T) (int, <-chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	data := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		tp := textproto.NewConn(conn)
		_ = tp.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			switch cmd := strings.ToUpper(strings.Fields(line)[0]); cmd {
			case "EHLO":
				_ = tp.PrintfLine("250-localhost")
				_ = tp.PrintfLine("250 8BITMIME")
			case "MAIL", "RCPT":
				_ = tp.PrintfLine("250 OK")
			case "DATA":
				_ = tp.PrintfLine("354 End data with <CR><LF>.<CR><LF>")
				body, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				data <- body
				_ = tp.PrintfLine("250 OK queued")
			case "QUIT":
				_ = tp.PrintfLine("221 Bye")
				return
			default:
				_ = tp.PrintfLine("502 unsupported")
			}
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port, data
}

func TestSMTPSenderDeliversMultipart(t *testing.T) {
	port, data := serveSMTP(t)
	sender := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port}, From{Address: "events@example.com", Name: "Smoke & Oak"})
	require.True(t, sender.Configured())

	pdf := []byte(strings.Repeat("%PDF-1.4 quote ", 20))
	msg := testMessage()
	msg.HTML = "<p>Total: $1,234.50</p>"
	msg.Attachments = []Attachment{{Filename: "QT-000042.pdf", ContentType: "application/pdf", Data: pdf}}
	require.NoError(t, sender.Send(context.Background(), msg))

	parsed, err := mail.ReadMessage(strings.NewReader(string(<-data)))
	require.NoError(t, err)
	require.Equal(t, "dana@example.com", parsed.Header.Get("To"))
	require.Contains(t, parsed.Header.Get("From"), "<events@example.com>")

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	htmlPart, err := mr.NextPart()
	require.NoError(t, err)
	html, err := io.ReadAll(htmlPart)
	require.NoError(t, err)
	require.Equal(t, "<p>Total: $1,234.50</p>", string(html))

	filePart, err := mr.NextPart()
	require.NoError(t, err)
	require.Equal(t, "QT-000042.pdf", filePart.FileName())
	encoded, err := io.ReadAll(filePart)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	require.Equal(t, pdf, decoded)
}

func TestSMTPSenderRequiresAuthWhenCredentialsSet(t *testing.T) {
	port, data := serveSMTP(t)
	sender := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port, Username: "relay", Password: "secret"},
		From{Address: "events@example.com"})

	err := sender.Send(context.Background(), testMessage())
	require.ErrorContains(t, err, "does not advertise AUTH")

	select {
	case <-data:
		t.Fatal("message was relayed without authentication")
	default:
	}
}

func TestSMTPSenderNotConfiguredWithoutHost(t *testing.T) {
	require.False(t, NewSMTPSender(SMTPConfig{}, From{Address: "events@example.com"}).Configured())
	require.False(t, NewSMTPSender(SMTPConfig{Host: "mail.example.com"}, From{}).Configured())
}
