package domain

import "time"

// Intent is the conversational purpose assigned to one utterance
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentThanks         Intent = "thanks"
	IntentPriceGeneric   Intent = "price_generic"
	IntentProjectMatches Intent = "project_matches"
	IntentFallback       Intent = "fallback"
)

// Reply types understood by the chat widget
const (
	ReplyTypeText        = "text"
	ReplyTypeProjectList = "project_list"
)

// ProjectMatch is one ranked catalog item. Item points into the caller's
// catalog slice and must not be mutated.
type ProjectMatch struct {
	Item  *CatalogItem
	Score int
}

// MatchResult is the outcome of classifying a single utterance.
// Matches is non-empty only for IntentProjectMatches.
type MatchResult struct {
	Intent  Intent
	Text    string
	Matches []ProjectMatch
}

// ReplyType maps the intent onto the widget's message type
func (r *MatchResult) ReplyType() string {
	if r.Intent == IntentProjectMatches {
		return ReplyTypeProjectList
	}
	return ReplyTypeText
}

// ChatRequest represents one user turn sent by the chat widget
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatReply is the bot turn returned to the chat widget
type ChatReply struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Type      string           `json:"type"`
	Intent    Intent           `json:"intent"`
	Projects  []ProjectSummary `json:"projects,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
