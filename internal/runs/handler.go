package runs

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

//go:generate mockgen -source=$GOFILE -destination=runs_mocks_test.go -package=runs_test

type runsRepo interface {
	Add(ctx context.Context, run Run) (*Run, error)
	Get(ctx context.Context, userID, id int) (*Run, error)
	List(ctx context.Context, params ListParams) (_ []Run, total int, err error)
	ListAll(ctx context.Context, params RunParams) ([]Run, error)
}

type ListResponse struct {
	Runs  []Run `json:"runs"`
	Total int   `json:"total"`
}

type StatsResponse struct {
	Window     Window                `json:"window"`
	Aggregates map[RunType]Aggregate `json:"aggregates"`
}

type Handler struct {
	repo           runsRepo
	aggregator     *Aggregator
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(repo runsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		aggregator:     NewAggregator(repo),
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) Aggregator() *Aggregator {
	return handler.aggregator
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/runs", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-run")

	runsRouter := router.PathPrefix("/runs").Subrouter()
	runsRouter.HandleFunc("/stats", handler.HandleStats).Methods("GET", "OPTIONS").Name("runs-stats")
	runsRouter.HandleFunc("/history/{type}", handler.HandleHistory).Methods("GET", "OPTIONS").Name("runs-history")
	runsRouter.HandleFunc("/page/{page}/size/{size}", handler.HandleList).Methods("GET", "OPTIONS").Name("runs-page")
	runsRouter.HandleFunc("/{id:[0-9]+}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-run")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.new")
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

	var run Run
	if err := json.NewDecoder(r.Body).Decode(&run); err != nil {
		log.Tracef("new run, unmarshal json params: %s", err)
		http.Error(w, "add run failed", http.StatusBadRequest)
		return
	}

	// the owner always comes from the session, never from the body
	run.UserID = userID
	if run.CreatedAt.IsZero() {
		run.CreatedAt = handler.now()
	}

	var validationErr *ValidationError
	if err := run.Validate(); errors.As(err, &validationErr) {
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
		return
	}

	addedRun, err := handler.repo.Add(ctx, run)
	if err != nil {
		logging.Failure("runs.Add", err, log.Fields{"user_id": userID, "run_type": run.Type})
		http.Error(w, "error, failed to add new run", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterRunsLogged.WithLabelValues(string(addedRun.Type)).Inc()

	addedRunJson, err := json.Marshal(addedRun)
	if err != nil {
		log.Errorf("failed to marshal new run: %s", err)
		http.Error(w, "error, failed to add new run", http.StatusInternalServerError)
		return
	}

	log.Debugf("new run added: %d, user %d", addedRun.ID, userID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedRunJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	run, err := handler.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	} else if err != nil {
		logging.Failure("runs.Get", err, log.Fields{"user_id": userID, "run_id": id})
		http.Error(w, "failed to get run", http.StatusInternalServerError)
		return
	}

	runJson, err := json.Marshal(run)
	if err != nil {
		log.Errorf("failed to marshal run: %s", err)
		http.Error(w, "failed to marshal run", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, runJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle get runs page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle get runs page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page size (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	runType := RunType(r.URL.Query().Get("type"))
	if runType != "" && !runType.Valid() {
		http.Error(w, "invalid run type", http.StatusBadRequest)
		return
	}

	runs, total, err := handler.repo.List(ctx, ListParams{
		RunParams: RunParams{
			UserID: userID,
			Type:   runType,
		},
		Page: page,
		Size: size,
	})
	if err != nil {
		logging.Failure("runs.List", err, log.Fields{"user_id": userID, "page": page, "size": size})
		http.Error(w, "failed to get runs", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(ListResponse{
		Runs:  runs,
		Total: total,
	})
	if err != nil {
		log.Errorf("marshal runs error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.stats")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	window, err := ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	aggregates, err := handler.aggregator.Aggregate(ctx, userID, window, handler.now())
	if err != nil {
		logging.Failure("runs.Aggregate", err, log.Fields{"user_id": userID, "window": window})
		http.Error(w, "failed to get run stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(StatsResponse{
		Window:     window,
		Aggregates: aggregates,
	})
	if err != nil {
		log.Errorf("marshal run stats error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.history")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	runType := RunType(mux.Vars(r)["type"])
	if !runType.Valid() {
		http.Error(w, "invalid run type", http.StatusBadRequest)
		return
	}

	window, err := ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	history, err := handler.aggregator.History(ctx, userID, runType, window, handler.now())
	if err != nil {
		logging.Failure("runs.History", err, log.Fields{"user_id": userID, "run_type": runType, "window": window})
		http.Error(w, "failed to get run history", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("failed to marshal run history: %s", err)
		http.Error(w, "failed to marshal run history", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyJson, http.StatusOK)
}
