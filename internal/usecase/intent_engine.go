package usecase

import (
	"sort"
	"strings"

	"github.com/lumo/storefront/internal/domain"
	"github.com/rs/zerolog"
)

// Field weights for relevance scoring. A term scores against the first
// field it appears in, checked in the order title, category, description, tags.
const (
	weightTitle       = 5
	weightCategory    = 3
	weightDescription = 1
	weightTags        = 2
)

// maxProjectMatches caps how many projects a single reply lists
const maxProjectMatches = 3

// Fixed reply texts
const (
	greetingReply = "Hi! I'm Lumo. I can help you find the perfect project from our store. " +
		"What are you looking for? You can ask about IoT, Robotics, AI, or specific technologies."
	thanksReply       = "You're welcome! Let me know if you need anything else."
	priceGenericReply = "Our projects typically range from ₹2,000 to ₹15,000 depending on complexity. " +
		"If you ask about a specific project or category, I can give you a better estimate!"
	fallbackReply = "I'm not sure I found a project for that. We have categories like **IoT**, **Robotics**, " +
		"**AI**, and **Embedded Systems**. Try searching for one of those!"
	matchesOutro = "\nWould you like to see details for any of these?"
)

var greetingKeywords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "start": true, "begin": true, "help": true,
}

// thanksKeywords match anywhere in the text, so order is irrelevant
var thanksKeywords = []string{"thanks", "thank", "thx"}

// EngineConfig holds configuration for the intent engine
type EngineConfig struct {
	EnableDebugLogging bool
	Logger             zerolog.Logger
}

// IntentEngine classifies chat utterances and ranks catalog projects.
// It holds no per-call state and is safe for concurrent use.
type IntentEngine struct {
	enableDebugLogging bool
	logger             zerolog.Logger
}

// NewIntentEngine creates a new intent engine with the given configuration
func NewIntentEngine(config EngineConfig) *IntentEngine {
	return &IntentEngine{
		enableDebugLogging: config.EnableDebugLogging,
		logger:             config.Logger.With().Str("component", "intent_engine").Logger(),
	}
}

// Classify maps one utterance to a reply. Checks run in order and the first
// hit wins: greeting, thanks, generic price question, catalog search, fallback.
// The returned matches point into catalog.
func (e *IntentEngine) Classify(utterance string, catalog []domain.CatalogItem) *domain.MatchResult {
	text := normalizeUtterance(utterance)

	if isGreeting(text) {
		return &domain.MatchResult{Intent: domain.IntentGreeting, Text: greetingReply}
	}

	if isThanks(text) {
		return &domain.MatchResult{Intent: domain.IntentThanks, Text: thanksReply}
	}

	if isGenericPriceQuestion(text) {
		return &domain.MatchResult{Intent: domain.IntentPriceGeneric, Text: priceGenericReply}
	}

	terms := extractSearchTerms(text)
	if e.enableDebugLogging {
		e.logger.Debug().Str("utterance", utterance).Strs("terms", terms).Msg("extracted search terms")
	}

	matches := e.rankProjects(terms, catalog)
	if len(matches) == 0 {
		return &domain.MatchResult{Intent: domain.IntentFallback, Text: fallbackReply}
	}

	if len(matches) > maxProjectMatches {
		matches = matches[:maxProjectMatches]
	}

	return &domain.MatchResult{
		Intent:  domain.IntentProjectMatches,
		Text:    buildMatchesReply(utterance, matches),
		Matches: matches,
	}
}

func isGreeting(text string) bool {
	if greetingKeywords[text] {
		return true
	}
	head, _, found := strings.Cut(text, " ")
	return found && greetingKeywords[head]
}

func isThanks(text string) bool {
	for _, keyword := range thanksKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func isGenericPriceQuestion(text string) bool {
	if text == "price" || text == "cost" {
		return true
	}
	return strings.Contains(text, "much") && strings.Contains(text, "project")
}

// rankProjects scores every item and returns those with a positive score,
// highest first. Equal scores keep catalog order.
func (e *IntentEngine) rankProjects(terms []string, catalog []domain.CatalogItem) []domain.ProjectMatch {
	if len(terms) == 0 || len(catalog) == 0 {
		return nil
	}

	var matches []domain.ProjectMatch
	for i := range catalog {
		item := &catalog[i]
		score := scoreItem(terms, item)

		if e.enableDebugLogging {
			e.logger.Debug().Str("id", item.ID).Str("title", item.Title).Int("score", score).Msg("scored project")
		}

		if score > 0 {
			matches = append(matches, domain.ProjectMatch{Item: item, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// scoreItem sums, per term, the weight of the first field containing it
func scoreItem(terms []string, item *domain.CatalogItem) int {
	title := strings.ToLower(item.Title)
	category := strings.ToLower(item.Category)
	description := strings.ToLower(item.Description)

	tags := make([]string, len(item.Tags))
	for i, tag := range item.Tags {
		tags[i] = strings.ToLower(tag)
	}

	score := 0
	for _, term := range terms {
		switch {
		case strings.Contains(title, term):
			score += weightTitle
		case strings.Contains(category, term):
			score += weightCategory
		case strings.Contains(description, term):
			score += weightDescription
		case anyContains(tags, term):
			score += weightTags
		}
	}

	return score
}

func anyContains(values []string, term string) bool {
	for _, v := range values {
		if strings.Contains(v, term) {
			return true
		}
	}
	return false
}

// buildMatchesReply quotes the raw utterance and lists one bullet per match
func buildMatchesReply(utterance string, matches []domain.ProjectMatch) string {
	var b strings.Builder
	b.WriteString(`I found some projects that match "`)
	b.WriteString(utterance)
	b.WriteString("\": \n\n")

	for _, m := range matches {
		b.WriteString("• **")
		b.WriteString(m.Item.Title)
		b.WriteString("** (")
		b.WriteString(m.Item.Category)
		b.WriteString(") - ")
		b.WriteString(PriceDisplay(m.Item))
		b.WriteString("\n")
	}

	b.WriteString(matchesOutro)
	return b.String()
}
