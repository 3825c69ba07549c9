// Package pdf renders customer-facing quote documents.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// QuoteDocument is the pre-formatted content of a quote PDF. Amounts are
// already rendered as currency strings.
type QuoteDocument struct {
	BusinessName    string
	BusinessAddress string
	BusinessEmail   string
	BusinessPhone   string

	Reference  string
	IssueDate  string
	EventDate  string
	GuestCount int
	Venue      string
	Status     string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Lines []QuoteLine

	Subtotal    string
	Discount    string
	HasDiscount bool
	Tax         string
	TaxRate     string
	Gratuity    string
	HasGratuity bool
	Total       string
	Deposit     string
	Paid        string
	Balance     string

	Notes string
}

// QuoteLine is one row of the line-item table
type QuoteLine struct {
	Description string
	Category    string
	Quantity    string
	UnitPrice   string
	Amount      string
}

var (
	small     = props.Text{Size: 9}
	smallBold = props.Text{Size: 9, Style: fontstyle.Bold}
	right     = props.Text{Size: 9, Align: align.Right}
	rightBold = props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold}
)

// RenderQuote produces the PDF bytes for doc.
func RenderQuote(doc QuoteDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, doc.BusinessName, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.NewCol(4, "QUOTE", props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(18,
		col.New(8).Add(
			text.New(doc.BusinessAddress, props.Text{Size: 9}),
			text.New(doc.BusinessEmail, props.Text{Size: 9, Top: 5}),
			text.New(doc.BusinessPhone, props.Text{Size: 9, Top: 10}),
		),
		col.New(4).Add(
			text.New(doc.Reference, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Issued "+doc.IssueDate, props.Text{Size: 9, Top: 5, Align: align.Right}),
			text.New(doc.Status, props.Text{Size: 9, Top: 10, Align: align.Right}),
		),
	)

	event := doc.Venue
	if doc.EventDate != "" {
		event = doc.EventDate + "  " + event
	}
	m.AddRow(24,
		col.New(6).Add(
			text.New("Prepared for", smallBold),
			text.New(doc.CustomerName, props.Text{Size: 9, Top: 5}),
			text.New(doc.CustomerEmail, props.Text{Size: 9, Top: 10}),
			text.New(doc.CustomerPhone, props.Text{Size: 9, Top: 15}),
		),
		col.New(6).Add(
			text.New("Event", smallBold),
			text.New(event, props.Text{Size: 9, Top: 5}),
			text.New(fmt.Sprintf("%d guests", doc.GuestCount), props.Text{Size: 9, Top: 10}),
		),
	)

	m.AddRow(8,
		text.NewCol(6, "Description", smallBold),
		text.NewCol(2, "Qty", rightBold),
		text.NewCol(2, "Unit price", rightBold),
		text.NewCol(2, "Amount", rightBold),
	)
	m.AddRow(2, line.NewCol(12))

	for _, l := range doc.Lines {
		desc := l.Description
		if l.Category != "" {
			desc = fmt.Sprintf("%s (%s)", l.Description, l.Category)
		}
		m.AddRow(7,
			text.NewCol(6, desc, small),
			text.NewCol(2, l.Quantity, right),
			text.NewCol(2, l.UnitPrice, right),
			text.NewCol(2, l.Amount, right),
		)
	}
	m.AddRow(2, line.NewCol(12))

	totalRow := func(label, value string, bold bool) {
		labelProps, valueProps := small, right
		if bold {
			labelProps, valueProps = smallBold, rightBold
		}
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, label, labelProps),
			text.NewCol(2, value, valueProps),
		)
	}

	totalRow("Subtotal", doc.Subtotal, false)
	if doc.HasDiscount {
		totalRow("Discount", "-"+doc.Discount, false)
	}
	taxLabel := "Tax"
	if doc.TaxRate != "" {
		taxLabel = "Tax (" + doc.TaxRate + "%)"
	}
	totalRow(taxLabel, doc.Tax, false)
	if doc.HasGratuity {
		totalRow("Gratuity", doc.Gratuity, false)
	}
	totalRow("Total", doc.Total, true)
	totalRow("Deposit due", doc.Deposit, false)
	if doc.Paid != "" {
		totalRow("Paid", doc.Paid, false)
	}
	totalRow("Balance", doc.Balance, true)

	if doc.Notes != "" {
		m.AddRow(6, col.New(12))
		m.AddRow(6, text.NewCol(12, "Notes", smallBold))
		m.AddRow(20, text.NewCol(12, doc.Notes, small))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quote pdf: %w", err)
	}
	return out.GetBytes(), nil
}
