package scorecard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/runanalysis/internal/auth"
	"github.com/2beens/runanalysis/internal/logging"
	"github.com/2beens/runanalysis/internal/regimen"
	"github.com/2beens/runanalysis/internal/runs"
	"github.com/2beens/runanalysis/internal/telemetry/tracing"
	"github.com/2beens/runanalysis/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=scorecard_mocks_test.go -package=scorecard_test

type goalsProvider interface {
	CurrentGoals(ctx context.Context, userID int, now time.Time) (*regimen.CurrentGoals, error)
}

type aggregatesProvider interface {
	Aggregate(ctx context.Context, userID int, window runs.Window, now time.Time) (map[runs.RunType]runs.Aggregate, error)
}

type Handler struct {
	goals      goalsProvider
	aggregates aggregatesProvider
	now        func() time.Time
}

func NewHandler(goals goalsProvider, aggregates aggregatesProvider) *Handler {
	return &Handler{
		goals:      goals,
		aggregates: aggregates,
		now:        time.Now,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/scorecard", handler.HandleScorecard).Methods("GET", "OPTIONS").Name("scorecard")
}

// Build scores the current goals against the runs of the last week.
func (handler *Handler) Build(ctx context.Context, userID int, now time.Time) (_ *Scorecard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "scorecard.build")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	current, err := handler.goals.CurrentGoals(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	aggregates, err := handler.aggregates.Aggregate(ctx, userID, runs.WindowWeek, now)
	if err != nil {
		return nil, err
	}

	card := Evaluate(current, aggregates)
	span.SetAttributes(attribute.Bool("ready_to_advance", card.ReadyToAdvance))
	return card, nil
}

func (handler *Handler) HandleScorecard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.scorecard")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	card, err := handler.Build(ctx, userID, handler.now())
	if err != nil {
		logging.Failure("scorecard.Build", err, log.Fields{"user_id": userID})
		http.Error(w, "failed to build scorecard", http.StatusInternalServerError)
		return
	}

	cardJson, err := json.Marshal(card)
	if err != nil {
		log.Errorf("failed to marshal scorecard: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cardJson)
}
