package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const quoteTemplateBody = `<p>Hi {{.CustomerName}},</p>
<p>Thank you for considering {{.BusinessName}} for your event{{if .EventDate}} on {{.EventDate}}{{end}}.
Your quote <strong>{{.Reference}}</strong> is attached.</p>
<table>
<tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
{{if .HasDiscount}}<tr><td>Discount</td><td>-{{.Discount}}</td></tr>{{end}}
<tr><td>Tax</td><td>{{.Tax}}</td></tr>
{{if .HasGratuity}}<tr><td>Gratuity</td><td>{{.Gratuity}}</td></tr>{{end}}
<tr><td><strong>Total</strong></td><td><strong>{{.Total}}</strong></td></tr>
<tr><td>Deposit due</td><td>{{.Deposit}}</td></tr>
</table>
{{if .DepositLink}}<p><a href="{{.DepositLink}}">Pay deposit</a> or <a href="{{.FullLink}}">pay in full</a></p>{{end}}
<p>{{.BusinessName}}</p>`

const applicationTemplateBody = `<p>Hi {{.FirstName}},</p>
<p>Thanks for applying for the {{.Position}} position at {{.BusinessName}}. We will review your
application and get back to you soon.</p>`

// SeedDefaultData seeds email templates, a default tax rate and a large party
// gratuity rule when they are missing
func SeedDefaultData(db *gorm.DB) error {
	zap.L().Info("seeding default data")

	templates := []entity.EmailTemplate{
		{
			Slug:        entity.TemplateQuote,
			Name:        "Quote",
			Subject:     "Your catering quote {{.Reference}}",
			Body:        quoteTemplateBody,
			Description: "Sent with the quote PDF attached.",
		},
		{
			Slug:        entity.TemplateApplicationReceived,
			Name:        "Application received",
			Subject:     "We received your application",
			Body:        applicationTemplateBody,
			Description: "Sent to applicants after they submit the careers form.",
		},
	}
	for i := range templates {
		if err := createIfMissing(db, &templates[i], "slug = ?", templates[i].Slug); err != nil {
			return err
		}
	}

	taxRate := entity.TaxRate{Name: "Sales tax", Rate: decimal.RequireFromString("8.5"), IsDefault: true, IsActive: true}
	if err := createIfMissing(db, &taxRate, "is_default = ?", true); err != nil {
		return err
	}

	rule := entity.GratuityRule{Name: "Large party", Rate: decimal.NewFromInt(18), MinGuests: 20, AutoApply: true, IsActive: true}
	if err := createIfMissing(db, &rule, "name = ?", rule.Name); err != nil {
		return err
	}

	zap.L().Info("default data seeding completed")
	return nil
}

func createIfMissing[T any](db *gorm.DB, row *T, query string, arg interface{}) error {
	var existing T
	err := db.Where(query, arg).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed lookup: %w", err)
	}
	if err := db.Create(row).Error; err != nil {
		return fmt.Errorf("seed create: %w", err)
	}
	return nil
}
