package regimen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/runanalysis/internal/logging"
	"github.com/2beens/runanalysis/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=regimen_test

type GoalSource string

const (
	SourceRegimen          GoalSource = "regimen"
	SourceOverride         GoalSource = "override"
	SourceBeginnerTemplate GoalSource = "beginner_template"
	SourceNone             GoalSource = "none"
)

// CurrentGoals is what a user should be training for right now.
// Goals is nil while the user is asked to pick maintenance or a new regimen.
type CurrentGoals struct {
	Regimen    *Regimen   `json:"regimen"`
	Resolution Resolution `json:"resolution"`
	Goals      *GoalSet   `json:"goals"`
	Source     GoalSource `json:"source"`
}

type Schedule struct {
	Regimen Regimen `json:"regimen"`
	Variant Variant `json:"variant"`
	Weeks   []Week  `json:"weeks"`
}

type settingsStore interface {
	GetSettings(ctx context.Context, userID int) (*Settings, error)
	SwitchRegimen(ctx context.Context, userID, regimenID int) error
	SetCurrentWeek(ctx context.Context, userID, week int) error
	SetMaintenance(ctx context.Context, userID int, maintenance bool) error
	GetOverride(ctx context.Context, userID, regimenID, weekNumber int) (*GoalSet, error)
	UpsertOverride(ctx context.Context, userID, regimenID, weekNumber int, goals GoalSet) error
}

type Service struct {
	definitions definitionStore
	settings    settingsStore
}

func NewService(definitions definitionStore, settings settingsStore) *Service {
	return &Service{
		definitions: definitions,
		settings:    settings,
	}
}

func (s *Service) ListRegimens(ctx context.Context) ([]Regimen, error) {
	return s.definitions.ListRegimens(ctx)
}

func (s *Service) GetRegimen(ctx context.Context, id int) (*Regimen, error) {
	return s.definitions.GetRegimen(ctx, id)
}

func (s *Service) GetSchedule(ctx context.Context, regimenID int, variant Variant) (_ *Schedule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.regimen.schedule")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("regimen.id", regimenID))

	if variant == "" {
		variant = VariantNormal
	}
	if !variant.Valid() {
		return nil, fmt.Errorf("unknown variant [%s]", variant)
	}

	reg, err := s.definitions.GetRegimen(ctx, regimenID)
	if err != nil {
		return nil, err
	}

	weeks, err := s.definitions.ListWeeks(ctx, regimenID, variant)
	if err != nil {
		return nil, err
	}

	return &Schedule{
		Regimen: *reg,
		Variant: variant,
		Weeks:   weeks,
	}, nil
}

// CurrentGoals resolves the user's regimen position at the given time and
// returns the goals for it. A user override for the resolved week wins over the regimen row.
func (s *Service) CurrentGoals(ctx context.Context, userID int, now time.Time) (_ *CurrentGoals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.regimen.currentGoals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings.RegimenID == nil {
		beginnerGoals := BeginnerGoals
		return &CurrentGoals{
			Resolution: Resolution{
				Status:     StatusBeginner,
				WeekNumber: 1,
				Variant:    VariantNormal,
			},
			Goals:  &beginnerGoals,
			Source: SourceBeginnerTemplate,
		}, nil
	}

	reg, err := s.definitions.GetRegimen(ctx, *settings.RegimenID)
	if err != nil {
		return nil, fmt.Errorf("get regimen %d: %w", *settings.RegimenID, err)
	}

	resolution, err := Resolve(ResolveParams{
		Regimen:     *reg,
		CurrentWeek: settings.CurrentWeek,
		Maintenance: settings.Maintenance,
		Date:        now,
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("status", string(resolution.Status)))

	current := &CurrentGoals{
		Regimen:    reg,
		Resolution: resolution,
		Source:     SourceNone,
	}
	if resolution.Status == StatusCompletionPrompt {
		return current, nil
	}

	override, err := s.settings.GetOverride(ctx, userID, reg.ID, resolution.WeekNumber)
	if err == nil {
		current.Goals = override
		current.Source = SourceOverride
		return current, nil
	} else if !errors.Is(err, ErrOverrideNotFound) {
		return nil, err
	}

	week, err := s.weekGoals(ctx, reg.ID, resolution.WeekNumber, resolution.Variant)
	if err != nil {
		return nil, err
	}

	current.Goals = &week.Goals
	current.Source = SourceRegimen
	return current, nil
}

// weekGoals falls back to the normal row when a variant row is missing. A missing
// normal row means the regimen definition is broken.
func (s *Service) weekGoals(ctx context.Context, regimenID, weekNumber int, variant Variant) (*Week, error) {
	week, err := s.definitions.GetWeek(ctx, regimenID, weekNumber, variant)
	if errors.Is(err, ErrWeekNotFound) && variant != VariantNormal {
		log.Debugf("regimen %d week %d has no [%s] variant, using normal", regimenID, weekNumber, variant)
		week, err = s.definitions.GetWeek(ctx, regimenID, weekNumber, VariantNormal)
	}
	if errors.Is(err, ErrWeekNotFound) {
		logging.Failure("regimen.weekGoals", ErrWeekIntegrity, log.Fields{
			"regimen_id": regimenID,
			"week":       weekNumber,
			"variant":    variant,
		})
		return nil, fmt.Errorf("regimen %d week %d: %w", regimenID, weekNumber, ErrWeekIntegrity)
	}
	if err != nil {
		return nil, err
	}
	return week, nil
}

// SelectRegimen switches the user to week 1 of the given regimen.
func (s *Service) SelectRegimen(ctx context.Context, userID, regimenID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.regimen.select")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("regimen.id", regimenID))

	reg, err := s.definitions.GetRegimen(ctx, regimenID)
	if err != nil {
		return err
	}

	if _, err := s.weekGoals(ctx, reg.ID, 1, VariantNormal); err != nil {
		return err
	}

	if err := s.settings.SwitchRegimen(ctx, userID, reg.ID); err != nil {
		return fmt.Errorf("switch regimen: %w", err)
	}

	log.Debugf("user %d switched to regimen %d", userID, reg.ID)
	return nil
}

// Advance moves the user to the next week. Advancing past the final week
// leads to the completion prompt.
func (s *Service) Advance(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.regimen.advance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	settings, reg, err := s.userRegimen(ctx, userID)
	if err != nil {
		return -1, err
	}

	if settings.Maintenance {
		return -1, ErrInMaintenance
	}
	if settings.CurrentWeek > reg.Length {
		return -1, ErrCompletionPending
	}

	nextWeek := settings.CurrentWeek + 1
	if err := s.settings.SetCurrentWeek(ctx, userID, nextWeek); err != nil {
		return -1, fmt.Errorf("set current week: %w", err)
	}

	return nextWeek, nil
}

// ChooseMaintenance is only allowed from the completion prompt. Choosing it again
// while already in maintenance is a no-op.
func (s *Service) ChooseMaintenance(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.regimen.maintenance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	settings, reg, err := s.userRegimen(ctx, userID)
	if err != nil {
		return err
	}

	if settings.Maintenance {
		return nil
	}
	if settings.CurrentWeek <= reg.Length {
		return ErrNotCompleted
	}

	if err := s.settings.SetMaintenance(ctx, userID, true); err != nil {
		return fmt.Errorf("set maintenance: %w", err)
	}
	return nil
}

// OverrideGoals replaces the goals of the user's current week.
func (s *Service) OverrideGoals(ctx context.Context, userID int, goals GoalSet, now time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.regimen.override")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if err := goals.Validate(); err != nil {
		return err
	}

	settings, reg, err := s.userRegimen(ctx, userID)
	if err != nil {
		return err
	}

	resolution, err := Resolve(ResolveParams{
		Regimen:     *reg,
		CurrentWeek: settings.CurrentWeek,
		Maintenance: settings.Maintenance,
		Date:        now,
	})
	if err != nil {
		return err
	}
	if resolution.Status == StatusCompletionPrompt {
		return ErrCompletionPending
	}

	return s.settings.UpsertOverride(ctx, userID, reg.ID, resolution.WeekNumber, goals)
}

func (s *Service) userRegimen(ctx context.Context, userID int) (*Settings, *Regimen, error) {
	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if settings.RegimenID == nil {
		return nil, nil, ErrNoRegimen
	}

	reg, err := s.definitions.GetRegimen(ctx, *settings.RegimenID)
	if err != nil {
		return nil, nil, fmt.Errorf("get regimen %d: %w", *settings.RegimenID, err)
	}

	return settings, reg, nil
}
