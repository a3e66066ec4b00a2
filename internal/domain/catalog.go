package domain

// BudgetKind discriminates the shapes a project budget can take
type BudgetKind string

const (
	BudgetNone   BudgetKind = ""
	BudgetFlat   BudgetKind = "flat"
	BudgetRange  BudgetKind = "range"
	BudgetOpaque BudgetKind = "opaque"
)

// Budget is the resolved form of a catalog budget.
// Only the fields relevant to Kind are populated:
//   - BudgetFlat: Amount holds the value as it should be displayed ("500", "4k")
//   - BudgetRange: Min is non-zero, Max is zero when the range is open-ended
//   - BudgetOpaque: Text holds a best-effort rendering of an unrecognized shape
type Budget struct {
	Kind   BudgetKind `json:"kind,omitempty"`
	Amount string     `json:"amount,omitempty"`
	Min    float64    `json:"min,omitempty"`
	Max    float64    `json:"max,omitempty"`
	Text   string     `json:"text,omitempty"`
}

// FlatBudget returns a single-value budget
func FlatBudget(amount string) Budget {
	return Budget{Kind: BudgetFlat, Amount: amount}
}

// RangeBudget returns a min/max budget. A zero max means "from min".
func RangeBudget(min, max float64) Budget {
	return Budget{Kind: BudgetRange, Min: min, Max: max}
}

// OpaqueBudget returns a budget whose structure was not understood
func OpaqueBudget(text string) Budget {
	return Budget{Kind: BudgetOpaque, Text: text}
}

// IsZero reports whether no budget was supplied
func (b Budget) IsZero() bool {
	return b.Kind == BudgetNone
}

// CatalogItem is one sellable project kit as seen by the chat engine.
// Everything except ID is optional; zero values mean the field was absent.
type CatalogItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Budget      Budget   `json:"budget,omitzero"`
	Price       float64  `json:"price,omitempty"`
}

// ProjectSummary is the catalog entry shape returned to the storefront
type ProjectSummary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	PriceDisplay string   `json:"priceDisplay"`
	Score        int      `json:"score,omitempty"`
}
