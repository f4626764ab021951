// Package clinic is the therapist's workflow: registering children,
// recording finalized evaluations and producing reports.
package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/evaluation"
	"github.com/multikids/portage/internal/report"
	"github.com/multikids/portage/internal/store"
)

// ErrInvalidChild is returned when child details fail validation.
var ErrInvalidChild = errors.New("invalid child")

// MaxAge is the oldest age, in years, the questionnaire covers.
const MaxAge = 18

// Stats are the dashboard totals.
type Stats struct {
	Children    int `json:"children"`
	Evaluations int `json:"evaluations"`
}

// Service coordinates the repositories with the scoring core.
type Service struct {
	children  store.ChildRepo
	therapist store.TherapistRepo
	logger    *zap.Logger

	// Now is the clock used for evaluation dates. Tests replace it.
	Now func() time.Time
}

// NewService creates a Service over the given repositories.
func NewService(children store.ChildRepo, therapist store.TherapistRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		children:  children,
		therapist: therapist,
		logger:    logger,
		Now:       time.Now,
	}
}

func validateDetails(name string, age int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidChild)
	}
	if age < 0 || age > MaxAge {
		return "", fmt.Errorf("%w: age must be between 0 and %d, got %d", ErrInvalidChild, MaxAge, age)
	}
	return name, nil
}

// RegisterChild creates a child with a fresh ID and no evaluations.
func (s *Service) RegisterChild(ctx context.Context, name string, age int, notes string) (child.Child, error) {
	name, err := validateDetails(name, age)
	if err != nil {
		return child.Child{}, err
	}
	c := child.Child{
		ID:          uuid.NewString(),
		Name:        name,
		Age:         age,
		Notes:       strings.TrimSpace(notes),
		Evaluations: []child.Evaluation{},
	}
	if err := s.children.Save(ctx, c); err != nil {
		return child.Child{}, fmt.Errorf("register child: %w", err)
	}
	s.logger.Info("child registered", zap.String("child_id", c.ID))
	return c, nil
}

// UpdateChild changes a child's details, keeping the evaluation history.
func (s *Service) UpdateChild(ctx context.Context, id, name string, age int, notes string) (child.Child, error) {
	name, err := validateDetails(name, age)
	if err != nil {
		return child.Child{}, err
	}
	c, err := s.children.Get(ctx, id)
	if err != nil {
		return child.Child{}, err
	}
	c.Name, c.Age, c.Notes = name, age, strings.TrimSpace(notes)
	if err := s.children.Save(ctx, c); err != nil {
		return child.Child{}, fmt.Errorf("update child: %w", err)
	}
	s.logger.Info("child updated", zap.String("child_id", id))
	return c, nil
}

// DeleteChild removes a child and all of its evaluations.
func (s *Service) DeleteChild(ctx context.Context, id string) error {
	if err := s.children.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("child deleted", zap.String("child_id", id))
	return nil
}

// Child returns one child.
func (s *Service) Child(ctx context.Context, id string) (child.Child, error) {
	return s.children.Get(ctx, id)
}

// Children returns every registered child in registration order.
func (s *Service) Children(ctx context.Context) ([]child.Child, error) {
	return s.children.List(ctx)
}

// Stats counts children and evaluations.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	children, err := s.children.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Children: len(children)}
	for _, c := range children {
		st.Evaluations += len(c.Evaluations)
	}
	return st, nil
}

// Finalize closes a draft and appends the evaluation to its child. An
// incomplete draft returns *evaluation.IncompleteError and stores nothing.
func (s *Service) Finalize(ctx context.Context, d *evaluation.Draft) (child.Evaluation, error) {
	c, err := s.children.Get(ctx, d.ChildID)
	if err != nil {
		return child.Evaluation{}, err
	}
	e, err := d.Finalize(s.Now())
	if err != nil {
		return child.Evaluation{}, err
	}
	c = c.AppendEvaluation(e)
	if err := s.children.Save(ctx, c); err != nil {
		return child.Evaluation{}, fmt.Errorf("save evaluation: %w", err)
	}
	s.logger.Info("evaluation recorded",
		zap.String("child_id", c.ID),
		zap.String("category", string(e.Category)),
		zap.String("age_range", e.AgeBand),
		zap.Int("evaluations", len(c.Evaluations)),
	)
	return e, nil
}

// Report computes the full report for one child as of now.
func (s *Service) Report(ctx context.Context, id string, now time.Time) (report.Full, error) {
	c, err := s.children.Get(ctx, id)
	if err != nil {
		return report.Full{}, err
	}
	full, err := report.Assemble(c, now)
	if err != nil {
		return report.Full{}, fmt.Errorf("report for %s: %w", id, err)
	}
	return full, nil
}

// TherapistName returns the stored display name, or "" when none is set.
func (s *Service) TherapistName(ctx context.Context) (string, error) {
	return s.therapist.Name(ctx)
}

// SetTherapistName stores the display name. An empty name clears it.
func (s *Service) SetTherapistName(ctx context.Context, name string) error {
	return s.therapist.SetName(ctx, name)
}
