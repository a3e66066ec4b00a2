package usecase

import (
	"strconv"

	"github.com/lumo/storefront/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	currencySymbol  = "₹"
	unknownPrice    = "Check details"
	priceMaxDecimal = 3
)

// groupedPrinter renders flat prices with thousands separators ("3,500").
// message.Printer is safe for concurrent use once constructed.
var groupedPrinter = message.NewPrinter(language.English)

// PriceDisplay renders the price shown next to a project in chat replies.
// It never fails: unrecognized shapes degrade to a best-effort string.
func PriceDisplay(item *domain.CatalogItem) string {
	if item == nil {
		return unknownPrice
	}

	switch b := item.Budget; b.Kind {
	case domain.BudgetRange:
		if b.Max != 0 {
			return currencySymbol + formatAmount(b.Min) + " - " + currencySymbol + formatAmount(b.Max)
		}
		return "From " + currencySymbol + formatAmount(b.Min)
	case domain.BudgetOpaque:
		if b.Text == "" {
			return unknownPrice
		}
		return b.Text
	case domain.BudgetFlat:
		return currencySymbol + b.Amount
	}

	if item.Price != 0 {
		return currencySymbol + groupedPrinter.Sprintf("%v", number.Decimal(item.Price, number.MaxFractionDigits(priceMaxDecimal)))
	}

	return unknownPrice
}

// formatAmount prints a number without grouping or trailing zeros (1000, 1500.5)
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
