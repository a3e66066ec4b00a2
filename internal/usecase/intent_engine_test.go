package usecase

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lumo/storefront/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *IntentEngine {
	return NewIntentEngine(EngineConfig{Logger: zerolog.Nop()})
}

func matchIDs(result *domain.MatchResult) []string {
	ids := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		ids = append(ids, m.Item.ID)
	}
	return ids
}

func TestIntentEngine_Greeting(t *testing.T) {
	engine := newTestEngine()
	// Would score on "hello" if the search ran
	catalog := []domain.CatalogItem{{ID: "1", Title: "Hello World Robot", Category: "hello"}}

	tests := []string{"Hello", "hi", "  HEY  ", "hello there", "help me find a robot", "start", "begin please", "\ufeffhello"}
	for _, utterance := range tests {
		t.Run(utterance, func(t *testing.T) {
			result := engine.Classify(utterance, catalog)
			assert.Equal(t, domain.IntentGreeting, result.Intent)
			assert.Equal(t, greetingReply, result.Text)
			assert.Empty(t, result.Matches)
		})
	}

	t.Run("keyword must be a whole leading word", func(t *testing.T) {
		for _, utterance := range []string{"history robot", "hiking", "helpful robot"} {
			result := engine.Classify(utterance, nil)
			assert.NotEqual(t, domain.IntentGreeting, result.Intent, utterance)
		}
	})
}

func TestIntentEngine_Thanks(t *testing.T) {
	engine := newTestEngine()

	for _, utterance := range []string{"thanks!", "Thank you so much", "ok thx", "many thanks for the robot"} {
		t.Run(utterance, func(t *testing.T) {
			result := engine.Classify(utterance, nil)
			assert.Equal(t, domain.IntentThanks, result.Intent)
			assert.Equal(t, thanksReply, result.Text)
		})
	}

	t.Run("greeting wins over thanks", func(t *testing.T) {
		result := engine.Classify("hi thanks", nil)
		assert.Equal(t, domain.IntentGreeting, result.Intent)
	})
}

func TestIntentEngine_PriceGeneric(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{{ID: "1", Title: "Price Tracker", Category: "Software"}}

	tests := []struct {
		utterance string
		want      domain.Intent
	}{
		{"price", domain.IntentPriceGeneric},
		{" COST ", domain.IntentPriceGeneric},
		{"how much does a project cost", domain.IntentPriceGeneric},
		{"how much for your projects", domain.IntentPriceGeneric},
		{"price tracker", domain.IntentProjectMatches},
		{"how much", domain.IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			result := engine.Classify(tt.utterance, catalog)
			assert.Equal(t, tt.want, result.Intent)
		})
	}
}

func TestIntentEngine_StopWordFiltering(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{{ID: "arm", Title: "Robot Arm", Category: "Robotics"}}

	result := engine.Classify("can you show me a robot project", catalog)

	require.Equal(t, domain.IntentProjectMatches, result.Intent)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "arm", result.Matches[0].Item.ID)
	assert.GreaterOrEqual(t, result.Matches[0].Score, 5)
}

func TestIntentEngine_Stemming(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{{ID: "lf", Title: "Line Follower Robot", Category: "Autonomous"}}

	for _, utterance := range []string{"robots", "robotics kits"} {
		result := engine.Classify(utterance, catalog)
		require.Equal(t, domain.IntentProjectMatches, result.Intent, utterance)
		assert.Equal(t, weightTitle, result.Matches[0].Score, utterance)
	}
}

func TestIntentEngine_ScoreOrdering(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{
		{ID: "B", Title: "Plant Monitor", Description: "uses a drone for aerial views"},
		{ID: "A", Title: "Drone Kit"},
	}

	result := engine.Classify("drone", catalog)

	require.Equal(t, domain.IntentProjectMatches, result.Intent)
	assert.Equal(t, []string{"A", "B"}, matchIDs(result))
	assert.Equal(t, weightTitle, result.Matches[0].Score)
	assert.Equal(t, weightDescription, result.Matches[1].Score)
}

func TestIntentEngine_StableTieBreak(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{
		{ID: "first", Title: "Sensor Hub"},
		{ID: "high", Title: "Sensor Glove", Category: "Wearable"},
		{ID: "second", Title: "Sensor Array"},
		{ID: "none", Title: "Motor Driver"},
	}

	result := engine.Classify("sensor wearable", catalog)

	require.Equal(t, domain.IntentProjectMatches, result.Intent)
	assert.Equal(t, []string{"high", "first", "second"}, matchIDs(result))
}

func TestIntentEngine_FieldPriority(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name string
		item domain.CatalogItem
		want int
	}{
		{
			name: "title only",
			item: domain.CatalogItem{ID: "1", Title: "Solar Tracker"},
			want: weightTitle,
		},
		{
			name: "category only",
			item: domain.CatalogItem{ID: "1", Title: "Tracker", Category: "Solar Energy"},
			want: weightCategory,
		},
		{
			name: "description only",
			item: domain.CatalogItem{ID: "1", Title: "Tracker", Description: "Follows the solar path"},
			want: weightDescription,
		},
		{
			name: "tags only",
			item: domain.CatalogItem{ID: "1", Title: "Tracker", Tags: []string{"Arduino", "Solar"}},
			want: weightTags,
		},
		{
			name: "every field matches but only title counts",
			item: domain.CatalogItem{
				ID:          "1",
				Title:       "Solar Tracker",
				Category:    "Solar",
				Description: "solar",
				Tags:        []string{"solar"},
			},
			want: weightTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Classify("solar", []domain.CatalogItem{tt.item})
			require.Equal(t, domain.IntentProjectMatches, result.Intent)
			assert.Equal(t, tt.want, result.Matches[0].Score)
		})
	}
}

func TestIntentEngine_ScoresSumAcrossTerms(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{{
		ID:          "1",
		Title:       "Gesture Controlled Car",
		Category:    "Robotics",
		Description: "Drive with hand motion",
		Tags:        []string{"Accelerometer"},
	}}

	result := engine.Classify("gesture robotics hand accelerometer", catalog)

	require.Equal(t, domain.IntentProjectMatches, result.Intent)
	// gesture in title, robot in category, hand in description, accelerometer in tags
	assert.Equal(t, 5+3+1+2, result.Matches[0].Score)
}

func TestIntentEngine_TopThreeCap(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{
		{ID: "1", Title: "Smart Lamp"},
		{ID: "2", Title: "Smart Lock"},
		{ID: "3", Title: "Smart Mirror"},
		{ID: "4", Title: "Smart Plug"},
		{ID: "5", Title: "Smart Fan"},
	}

	result := engine.Classify("smart", catalog)

	require.Equal(t, domain.IntentProjectMatches, result.Intent)
	assert.Equal(t, []string{"1", "2", "3"}, matchIDs(result))
	assert.Equal(t, maxProjectMatches, strings.Count(result.Text, "• "))
}

func TestIntentEngine_Fallback(t *testing.T) {
	engine := newTestEngine()
	robotArm := []domain.CatalogItem{{ID: "1", Title: "Robot Arm"}}

	tests := []struct {
		name      string
		utterance string
		catalog   []domain.CatalogItem
	}{
		{"no match", "xyzzyqux", robotArm},
		{"empty utterance", "", robotArm},
		{"whitespace only", "   \t\n ", robotArm},
		{"only stop words", "can you show me the projects", robotArm},
		{"only short tokens", "ab cd", robotArm},
		{"empty catalog", "robot", nil},
		{"empty catalog slice", "robot", []domain.CatalogItem{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Classify(tt.utterance, tt.catalog)
			assert.Equal(t, domain.IntentFallback, result.Intent)
			assert.Equal(t, fallbackReply, result.Text)
			assert.Empty(t, result.Matches)
			assert.Equal(t, domain.ReplyTypeText, result.ReplyType())
		})
	}
}

func TestIntentEngine_Totality(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{
		{ID: "empty"},
		{ID: "tags-only", Tags: []string{"", "Wi-Fi"}},
		{ID: "opaque", Title: "Odd Budget", Budget: domain.OpaqueBudget("")},
		{ID: "unicode", Title: "Ünïcode Rōbot 机器人"},
	}

	utterances := []string{
		"",
		" ",
		strings.Repeat("robot ", 5000),
		"机器人 rōbot",
		"\x00\xff invalid utf8",
		"wi-fi odd",
	}

	for _, utterance := range utterances {
		assert.NotPanics(t, func() {
			result := engine.Classify(utterance, catalog)
			assert.NotNil(t, result)
		})
	}
}

func TestIntentEngine_Deterministic(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{
		{ID: "1", Title: "Smart Irrigation", Category: "IoT", Budget: domain.RangeBudget(2000, 0)},
		{ID: "2", Title: "IoT Door Lock", Category: "IoT", Price: 4200},
		{ID: "3", Title: "Irrigation Robot", Category: "Robotics"},
	}

	first := engine.Classify("smart irrigation iot robot", catalog)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, engine.Classify("smart irrigation iot robot", catalog))
	}
}

func TestIntentEngine_DoesNotMutateCatalog(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{
		{ID: "1", Title: "Robot Arm", Tags: []string{"Servo"}},
		{ID: "2", Title: "Robot Car", Tags: []string{"Motor"}},
	}
	before := []domain.CatalogItem{
		{ID: "1", Title: "Robot Arm", Tags: []string{"Servo"}},
		{ID: "2", Title: "Robot Car", Tags: []string{"Motor"}},
	}

	result := engine.Classify("robot servo", catalog)

	assert.Equal(t, before, catalog)
	// Matches borrow from the caller's slice
	assert.Same(t, &catalog[0], result.Matches[0].Item)
}

func TestIntentEngine_EndToEnd(t *testing.T) {
	engine := newTestEngine()
	catalog := []domain.CatalogItem{{
		ID:          "iot-1",
		Title:       "IoT Weather Station",
		Category:    "IoT",
		Description: "Monitor temperature",
		Budget:      domain.RangeBudget(3000, 4000),
	}}

	result := engine.Classify("I need an IoT project", catalog)

	require.Equal(t, domain.IntentProjectMatches, result.Intent)
	assert.Equal(t, domain.ReplyTypeProjectList, result.ReplyType())
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "iot-1", result.Matches[0].Item.ID)
	assert.Equal(t, "₹3000 - ₹4000", PriceDisplay(result.Matches[0].Item))

	want := "I found some projects that match \"I need an IoT project\": \n\n" +
		"• **IoT Weather Station** (IoT) - ₹3000 - ₹4000\n" +
		"\nWould you like to see details for any of these?"
	assert.Equal(t, want, result.Text)
}

func TestIntentEngine_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	catalog := []domain.CatalogItem{{ID: "1", Title: "Robot Arm"}}

	NewIntentEngine(EngineConfig{Logger: logger}).Classify("robot", catalog)
	assert.Empty(t, buf.String())

	NewIntentEngine(EngineConfig{EnableDebugLogging: true, Logger: logger}).Classify("robot", catalog)
	assert.Contains(t, buf.String(), `"terms":["robot"]`)
	assert.Contains(t, buf.String(), `"score":5`)
}

func BenchmarkIntentEngine_Classify(b *testing.B) {
	engine := newTestEngine()
	catalog := make([]domain.CatalogItem, 0, 200)
	for i := 0; i < 200; i++ {
		catalog = append(catalog, domain.CatalogItem{
			ID:          string(rune('a' + i%26)),
			Title:       "Smart Robot Kit",
			Category:    "Robotics",
			Description: "Autonomous rover with obstacle avoidance",
			Tags:        []string{"Arduino", "Ultrasonic"},
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Classify("looking for an arduino robot with ultrasonic sensors", catalog)
	}
}
