package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/lumo/storefront/internal/domain"
)

// untitledProject is shown for catalog rows saved without a title
const untitledProject = "Untitled Project"

// Inferred categories for rows saved without one
const (
	categorySoftware    = "software"
	categoryHardware    = "hardware"
	categoryIntegration = "integration"
)

var softwareHints = []string{"software", "app", "ai", "vision", "detection", "web"}

var hardwareHints = []string{
	"kit", "hardware", "arm", "robot", "iot", "embedded", "automation", "system", "vehicle",
}

// ProjectRecord is a catalog row as stored by the hosted database.
// Columns are loosely typed: ids may be numbers or uuids, budget may be a
// number, a string, a {min, max} object or null. A text column holding the
// wrong shape resolves to its empty value instead of failing the whole list.
type ProjectRecord struct {
	ID          json.RawMessage `json:"id"`
	Title       json.RawMessage `json:"title"`
	Category    json.RawMessage `json:"category"`
	Description json.RawMessage `json:"description"`
	Tags        json.RawMessage `json:"tags"`
	Budget      json.RawMessage `json:"budget"`
	Price       json.RawMessage `json:"price"`
}

// MapperOptions controls how records are resolved into catalog items
type MapperOptions struct {
	InferCategories bool
}

// ToCatalogItem resolves a record into the typed catalog item the chat engine reads
func ToCatalogItem(record *ProjectRecord, opts MapperOptions) domain.CatalogItem {
	item := domain.CatalogItem{
		ID:          decodeID(record.ID),
		Title:       decodeText(record.Title),
		Category:    decodeText(record.Category),
		Description: decodeText(record.Description),
		Tags:        decodeTags(record.Tags),
		Budget:      DecodeBudget(record.Budget),
		Price:       decodeNumber(record.Price),
	}

	title := item.Title
	if item.Title == "" {
		item.Title = untitledProject
	}

	if item.Category == "" && opts.InferCategories {
		item.Category = InferCategory(title, item.Description)
	}

	return item
}

// ToCatalogItems resolves a slice of records, keeping order
func ToCatalogItems(records []ProjectRecord, opts MapperOptions) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(records))
	for i := range records {
		items = append(items, ToCatalogItem(&records[i], opts))
	}
	return items
}

// InferCategory guesses a coarse category from title and description keywords
func InferCategory(title, description string) string {
	lowerTitle := strings.ToLower(title)
	lowerDesc := strings.ToLower(description)

	if strings.Contains(lowerDesc, "app") || containsAny(lowerTitle, softwareHints) {
		return categorySoftware
	}
	if containsAny(lowerTitle, hardwareHints) {
		return categoryHardware
	}
	return categoryIntegration
}

// DecodeBudget resolves the raw budget column into a tagged budget.
// Values that are empty or zero count as absent.
func DecodeBudget(raw json.RawMessage) domain.Budget {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return domain.Budget{}
	}

	var value interface{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return domain.OpaqueBudget(stripJSONPunctuation(raw))
	}

	switch v := value.(type) {
	case nil:
		return domain.Budget{}
	case bool:
		if !v {
			return domain.Budget{}
		}
		return domain.FlatBudget("true")
	case json.Number:
		f, err := v.Float64()
		if err != nil || f == 0 {
			return domain.Budget{}
		}
		return domain.FlatBudget(strconv.FormatFloat(f, 'f', -1, 64))
	case string:
		if v == "" {
			return domain.Budget{}
		}
		return domain.FlatBudget(v)
	case map[string]interface{}:
		if lower := numberField(v, "min"); lower != 0 {
			return domain.RangeBudget(lower, numberField(v, "max"))
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err == nil {
		raw = compact.Bytes()
	}
	return domain.OpaqueBudget(stripJSONPunctuation(raw))
}

// numberField reads a numeric or numeric-string field; anything else is zero
func numberField(obj map[string]interface{}, key string) float64 {
	switch v := obj[key].(type) {
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// decodeNumber reads a column that may hold a number or a numeric string
func decodeNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		f, _ := n.Float64()
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

// decodeID renders a numeric or string id as a string
func decodeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// decodeText reads a text column. Numbers and booleans keep their literal
// form; objects, arrays and null are empty.
func decodeText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var value interface{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// decodeTags reads the tags column. Non-text elements of a list are dropped
// and a comma separated string is split; any other shape has no tags.
func decodeTags(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		var tags []string
		for _, element := range list {
			if tag := strings.TrimSpace(decodeText(element)); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		var tags []string
		for _, tag := range strings.Split(joined, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	}
	return nil
}

func stripJSONPunctuation(raw []byte) string {
	return strings.NewReplacer("{", "", "}", "", `"`, "").Replace(string(raw))
}

func containsAny(s string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}
