// Package paylink builds Stripe Payment Link URLs for quotes.
package paylink

import (
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind distinguishes the deposit link from the pay-in-full link
type Kind string

const (
	KindDeposit Kind = "deposit"
	KindFull    Kind = "full"
)

// Link is a prefilled payment link
type Link struct {
	Kind        Kind   `json:"kind"`
	URL         string `json:"url"`
	AmountCents int64  `json:"amount_cents"`
}

// Builder creates links from a base Payment Link URL
type Builder struct {
	base *url.URL
}

// NewBuilder parses base. An empty base yields a Builder that is not
// Enabled.
func NewBuilder(base string) (*Builder, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return &Builder{}, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "https" || u.Host == "" {
		return nil, errors.New("paylink: base URL must be an absolute https URL")
	}
	return &Builder{base: u}, nil
}

// Enabled reports whether a base link is configured
func (b *Builder) Enabled() bool {
	return b != nil && b.base != nil
}

// Build returns the link for reference and kind. The amount is carried for
// display only; Stripe prices the link itself.
func (b *Builder) Build(reference string, kind Kind, email string, amount decimal.Decimal) (Link, bool) {
	if !b.Enabled() {
		return Link{}, false
	}
	u := *b.base
	q := u.Query()
	q.Set("client_reference_id", ClientReferenceID(reference, kind))
	if email != "" {
		q.Set("prefilled_email", email)
	}
	u.RawQuery = q.Encode()
	return Link{
		Kind:        kind,
		URL:         u.String(),
		AmountCents: amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
	}, true
}

// ClientReferenceID joins the quote reference and link kind. Stripe allows
// alphanumerics, dashes and underscores only.
func ClientReferenceID(reference string, kind Kind) string {
	var b strings.Builder
	for _, r := range reference + "-" + string(kind) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
