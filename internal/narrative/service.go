package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/llm"
	"github.com/multikids/portage/internal/report"
)

// Service writes recommendations for a report. Without a provider it only
// returns the static text.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger

	mu      sync.Mutex
	latest  Ticket
	readyAt Ticket
	pending []Recommendation
}

// Ticket identifies one background request. The zero Ticket never
// matches a result.
type Ticket uint64

// NewService creates a recommendation service. provider may be nil.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger.Named("narrative")}
}

// Enabled reports whether an LLM provider is configured.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// Recommend returns one recommendation per category needing attention.
// Any provider failure falls back to the static text.
func (s *Service) Recommend(ctx context.Context, f report.Full) []Recommendation {
	static := Static(f.Report)
	if s.provider == nil || len(static) == 0 {
		return static
	}

	written, err := s.generate(ctx, f)
	if err != nil {
		s.logger.Warn("falling back to static recommendations",
			zap.String("child_id", f.Child.ID), zap.Error(err))
		return static
	}

	out := make([]Recommendation, len(static))
	for i, r := range static {
		if w, ok := written[r.Category]; ok {
			w.Class = r.Class
			out[i] = w
			continue
		}
		out[i] = r
	}
	return out
}

// Request starts generation in the background and returns the ticket to
// pass to Consume. Only the newest request can deliver a result; older
// ones, and any whose ctx is cancelled, are dropped.
func (s *Service) Request(ctx context.Context, f report.Full) Ticket {
	s.mu.Lock()
	s.latest++
	t := s.latest
	s.readyAt, s.pending = 0, nil
	s.mu.Unlock()

	go func() {
		recs := s.Recommend(ctx, f)
		s.mu.Lock()
		defer s.mu.Unlock()
		if t != s.latest || ctx.Err() != nil {
			s.logger.Debug("dropping superseded recommendations", zap.String("child_id", f.Child.ID))
			return
		}
		s.readyAt, s.pending = t, recs
	}()
	return t
}

// Consume returns the result for t once it is ready and clears it.
func (s *Service) Consume(t Ticket) ([]Recommendation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t == 0 || s.readyAt != t {
		return nil, false
	}
	recs := s.pending
	s.readyAt, s.pending = 0, nil
	return recs, true
}

type recommendationsOutput struct {
	Recommendations []recommendationOutput `json:"recommendations"`
}

type recommendationOutput struct {
	Category string   `json:"category"`
	Summary  string   `json:"summary"`
	Actions  []string `json:"actions"`
}

func (s *Service) generate(ctx context.Context, f report.Full) (map[catalog.Category]Recommendation, error) {
	ctx = llm.WithPurpose(ctx, "recommendations")

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(f),
		Schema:      RecommendationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("recommendation generation: %w", err)
	}

	var out recommendationsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse recommendation response: %w", err)
	}

	written := make(map[catalog.Category]Recommendation, len(out.Recommendations))
	for _, r := range out.Recommendations {
		if r.Summary == "" {
			continue
		}
		cat := catalog.Category(r.Category)
		written[cat] = Recommendation{
			Category: cat,
			Summary:  r.Summary,
			Actions:  r.Actions,
			Source:   SourceLLM,
		}
	}
	return written, nil
}
