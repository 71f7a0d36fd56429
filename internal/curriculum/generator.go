package curriculum

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/lingoz/internal/assess"
	"github.com/abhisek/lingoz/internal/llm"
)

// GenerationError means the model could not produce a usable mission
// after the provider stack exhausted its retries and fallbacks. Fatal
// to starting a session; no partial mission is ever exposed.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("mission generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Config tunes mission generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}

// Service generates missions and caches them per (level, calendar day).
// The cache is a cost optimization: re-entering the session flow on the
// same day reuses the morning's mission instead of paying for another
// model call.
type Service struct {
	provider llm.Provider
	cfg      Config
	now      func() time.Time

	mu    sync.Mutex
	cache map[cacheKey]*Mission
}

type cacheKey struct {
	level assess.Level
	day   string
}

// NewService creates a mission generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		now:      time.Now,
		cache:    make(map[cacheKey]*Mission),
	}
}

// Generate returns the mission for (level, today), generating it on
// first call and serving the cached copy afterwards.
func (s *Service) Generate(ctx context.Context, level assess.Level) (*Mission, error) {
	key := cacheKey{level: level, day: s.now().Format("2006-01-02")}

	s.mu.Lock()
	if m, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return m, nil
	}
	s.mu.Unlock()

	m, err := s.generate(ctx, level)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = m
	s.mu.Unlock()
	return m, nil
}

// Invalidate drops the cached mission for (level, today), forcing the
// next Generate to call the model again.
func (s *Service) Invalidate(level assess.Level) {
	key := cacheKey{level: level, day: s.now().Format("2006-01-02")}
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

func (s *Service) generate(ctx context.Context, level assess.Level) (*Mission, error) {
	ctx = llm.WithPurpose(ctx, "mission-gen")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: missionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildMissionUserMessage(level)},
		},
		Schema:      MissionSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	var m Mission
	if err := json.Unmarshal(resp.Content, &m); err != nil {
		return nil, &GenerationError{Err: fmt.Errorf("parse mission response: %w", err)}
	}

	if err := validateMission(&m); err != nil {
		return nil, &GenerationError{Err: err}
	}

	return &m, nil
}
