package regimen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/runanalysis/internal/auth"
	"github.com/2beens/runanalysis/internal/logging"
	"github.com/2beens/runanalysis/internal/telemetry/metrics"
	"github.com/2beens/runanalysis/internal/telemetry/tracing"
	"github.com/2beens/runanalysis/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=regimen_mocks_test.go -package=regimen_test

type regimenService interface {
	ListRegimens(ctx context.Context) ([]Regimen, error)
	GetSchedule(ctx context.Context, regimenID int, variant Variant) (*Schedule, error)
	CurrentGoals(ctx context.Context, userID int, now time.Time) (*CurrentGoals, error)
	SelectRegimen(ctx context.Context, userID, regimenID int) error
	Advance(ctx context.Context, userID int) (int, error)
	ChooseMaintenance(ctx context.Context, userID int) error
	OverrideGoals(ctx context.Context, userID int, goals GoalSet, now time.Time) error
}

type SelectRequest struct {
	RegimenID int `json:"regimenId"`
}

type Handler struct {
	service        regimenService
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(service regimenService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/regimens", handler.HandleList).Methods("GET", "OPTIONS").Name("list-regimens")
	router.HandleFunc("/regimens/{id}/weeks", handler.HandleSchedule).Methods("GET", "OPTIONS").Name("regimen-schedule")

	regimenRouter := router.PathPrefix("/regimen").Subrouter()
	regimenRouter.HandleFunc("/current", handler.HandleCurrent).Methods("GET", "OPTIONS").Name("regimen-current")
	regimenRouter.HandleFunc("/select", handler.HandleSelect).Methods("POST", "OPTIONS").Name("regimen-select")
	regimenRouter.HandleFunc("/advance", handler.HandleAdvance).Methods("POST", "OPTIONS").Name("regimen-advance")
	regimenRouter.HandleFunc("/maintenance", handler.HandleMaintenance).Methods("POST", "OPTIONS").Name("regimen-maintenance")
	regimenRouter.HandleFunc("/goals", handler.HandleOverrideGoals).Methods("PUT", "OPTIONS").Name("regimen-goals")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.regimen.list")
	defer span.End()

	regimens, err := handler.service.ListRegimens(ctx)
	if err != nil {
		logging.Failure("regimen.ListRegimens", err, nil)
		http.Error(w, "failed to list regimens", http.StatusInternalServerError)
		return
	}

	writeJSON(w, regimens)
}

func (handler *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.regimen.schedule")
	defer span.End()

	vars := mux.Vars(r)
	regimenID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid regimen id", http.StatusBadRequest)
		return
	}

	variant := Variant(r.URL.Query().Get("variant"))
	if variant != "" && !variant.Valid() {
		http.Error(w, "invalid variant", http.StatusBadRequest)
		return
	}

	schedule, err := handler.service.GetSchedule(ctx, regimenID, variant)
	if err != nil {
		handler.writeServiceError(w, "regimen.GetSchedule", err, log.Fields{"regimen_id": regimenID})
		return
	}

	writeJSON(w, schedule)
}

func (handler *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.regimen.current")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	handler.writeCurrentGoals(ctx, w, userID)
}

func (handler *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.regimen.select")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("select regimen, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.RegimenID <= 0 {
		http.Error(w, "invalid regimen id", http.StatusBadRequest)
		return
	}

	if err := handler.service.SelectRegimen(ctx, userID, req.RegimenID); err != nil {
		handler.writeServiceError(w, "regimen.SelectRegimen", err, log.Fields{"user_id": userID, "regimen_id": req.RegimenID})
		return
	}

	handler.metricsManager.CounterRegimenTransitions.WithLabelValues("select").Inc()
	handler.writeCurrentGoals(ctx, w, userID)
}

func (handler *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.regimen.advance")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	nextWeek, err := handler.service.Advance(ctx, userID)
	if err != nil {
		handler.writeServiceError(w, "regimen.Advance", err, log.Fields{"user_id": userID})
		return
	}

	log.Debugf("user %d advanced to week %d", userID, nextWeek)
	handler.metricsManager.CounterRegimenTransitions.WithLabelValues("advance").Inc()
	handler.writeCurrentGoals(ctx, w, userID)
}

func (handler *Handler) HandleMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.regimen.maintenance")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.service.ChooseMaintenance(ctx, userID); err != nil {
		handler.writeServiceError(w, "regimen.ChooseMaintenance", err, log.Fields{"user_id": userID})
		return
	}

	handler.metricsManager.CounterRegimenTransitions.WithLabelValues("maintenance").Inc()
	handler.writeCurrentGoals(ctx, w, userID)
}

func (handler *Handler) HandleOverrideGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.regimen.goals")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var goals GoalSet
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		log.Tracef("override goals, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := handler.service.OverrideGoals(ctx, userID, goals, handler.now()); err != nil {
		handler.writeServiceError(w, "regimen.OverrideGoals", err, log.Fields{"user_id": userID})
		return
	}

	handler.metricsManager.CounterRegimenTransitions.WithLabelValues("override").Inc()
	handler.writeCurrentGoals(ctx, w, userID)
}

func (handler *Handler) writeCurrentGoals(ctx context.Context, w http.ResponseWriter, userID int) {
	current, err := handler.service.CurrentGoals(ctx, userID, handler.now())
	if err != nil {
		handler.writeServiceError(w, "regimen.CurrentGoals", err, log.Fields{"user_id": userID})
		return
	}
	writeJSON(w, current)
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, funcName string, err error, params log.Fields) {
	switch {
	case errors.Is(err, ErrRegimenNotFound), errors.Is(err, ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidGoals), errors.Is(err, ErrInvalidWeek):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNoRegimen),
		errors.Is(err, ErrCompletionPending),
		errors.Is(err, ErrInMaintenance),
		errors.Is(err, ErrNotCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logging.Failure(funcName, err, params)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
