package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumo/storefront/internal/domain"
	"github.com/rs/zerolog"
)

// catalogCacheKey holds the JSON-encoded catalog snapshot
const catalogCacheKey = "catalog:projects"

// apologyReply replaces the engine's answer when classification blows up
const apologyReply = "I'm having a little trouble connecting to my database. Try again in a moment!"

// ChatServiceConfig holds configuration for the chat service
type ChatServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
	Logger             zerolog.Logger
}

// classifier is the engine contract the chat service depends on
type classifier interface {
	Classify(utterance string, catalog []domain.CatalogItem) *domain.MatchResult
}

// ChatService answers chat turns and serves the catalog, with caching
type ChatService struct {
	cache    domain.CacheRepository
	catalog  domain.CatalogRepository
	engine   classifier
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewChatService creates a new chat service with dependencies
func NewChatService(
	cache domain.CacheRepository,
	catalog domain.CatalogRepository,
	config ChatServiceConfig,
) *ChatService {
	engine := NewIntentEngine(EngineConfig{
		EnableDebugLogging: config.EnableDebugLogging,
		Logger:             config.Logger,
	})

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &ChatService{
		cache:    cache,
		catalog:  catalog,
		engine:   engine,
		cacheTTL: cacheTTL,
		logger:   config.Logger.With().Str("component", "chat_service").Logger(),
		now:      time.Now,
	}
}

// Reply answers one chat turn.
// Flow: load catalog snapshot (cache -> repository) -> classify -> build reply.
// A catalog outage does not fail the turn; the engine runs on an empty snapshot.
func (s *ChatService) Reply(ctx context.Context, request *domain.ChatRequest) (*domain.ChatReply, error) {
	if request == nil || strings.TrimSpace(request.Message) == "" {
		return nil, domain.ErrInvalidRequest
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn().Err(err).Msg("catalog unavailable, answering without projects")
		catalog = nil
	}

	reply := &domain.ChatReply{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
	}

	result, err := s.classify(request.Message, catalog)
	if err != nil {
		s.logger.Error().Err(err).Str("message", request.Message).Msg("local chat engine failed")
		reply.Text = apologyReply
		reply.Type = domain.ReplyTypeText
		reply.Intent = domain.IntentFallback
		return reply, nil
	}

	reply.Text = result.Text
	reply.Type = result.ReplyType()
	reply.Intent = result.Intent
	for _, m := range result.Matches {
		summary := summarize(m.Item)
		summary.Score = m.Score
		reply.Projects = append(reply.Projects, summary)
	}

	s.logger.Info().
		Str("intent", string(reply.Intent)).
		Int("projects", len(reply.Projects)).
		Msg("chat reply")

	return reply, nil
}

// ListProjects returns every catalog project with its display price
func (s *ChatService) ListProjects(ctx context.Context) ([]domain.ProjectSummary, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ProjectSummary, 0, len(catalog))
	for i := range catalog {
		summaries = append(summaries, summarize(&catalog[i]))
	}
	return summaries, nil
}

// GetProject returns a single project by id, looking in the cached snapshot first
func (s *ChatService) GetProject(ctx context.Context, id string) (*domain.ProjectSummary, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidRequest
	}

	if catalog, err := s.getFromCache(ctx); err == nil {
		for i := range catalog {
			if catalog[i].ID == id {
				summary := summarize(&catalog[i])
				return &summary, nil
			}
		}
	}

	item, err := s.catalog.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := summarize(item)
	return &summary, nil
}

// classify runs the engine behind a recover guard
func (s *ChatService) classify(message string, catalog []domain.CatalogItem) (result *domain.MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classify panicked: %v", r)
		}
	}()

	result = s.engine.Classify(message, catalog)
	if result == nil {
		return nil, errors.New("classify returned no result")
	}
	return result, nil
}

// loadCatalog returns the catalog snapshot, refreshing the cache on a miss
func (s *ChatService) loadCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	cached, err := s.getFromCache(ctx)
	if err == nil {
		return cached, nil
	}

	catalog, err := s.catalog.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.setInCache(ctx, catalog); err != nil {
		// Serving uncached is fine; the next request retries the write
		s.logger.Warn().Err(err).Msg("failed to cache catalog snapshot")
	}

	return catalog, nil
}

// getFromCache retrieves the catalog snapshot from cache
func (s *ChatService) getFromCache(ctx context.Context) ([]domain.CatalogItem, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	data, err := s.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		return nil, err
	}

	var catalog []domain.CatalogItem
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: corrupt catalog snapshot: %v", domain.ErrCacheMiss, err)
	}
	return catalog, nil
}

// setInCache stores the catalog snapshot in cache
func (s *ChatService) setInCache(ctx context.Context, catalog []domain.CatalogItem) error {
	if s.cache == nil {
		return nil
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, catalogCacheKey, data, s.cacheTTL)
}

func summarize(item *domain.CatalogItem) domain.ProjectSummary {
	return domain.ProjectSummary{
		ID:           item.ID,
		Title:        item.Title,
		Category:     item.Category,
		Description:  item.Description,
		Tags:         item.Tags,
		PriceDisplay: PriceDisplay(item),
	}
}
