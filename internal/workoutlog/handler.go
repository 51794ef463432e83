package workoutlog

import (
	"encoding/json"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/program"
	"github.com/hourglassfit/hourglass/internal/telemetry/metrics"
	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
	"github.com/hourglassfit/hourglass/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type Handler struct {
	log            *CSVLog
	catalog        map[string]program.Exercise
	metricsManager *metrics.Manager
}

func NewHandler(csvLog *CSVLog, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		log:            csvLog,
		catalog:        CatalogByID(),
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/log", h.handleSaveSets).Methods("POST", "OPTIONS")
	router.HandleFunc("/log/{date}/exercise/{exerciseId}", h.handleGetLog).Methods("GET", "OPTIONS")
	router.HandleFunc("/sets/{exerciseId}/{date}", h.handleBuildSets).Methods("GET", "OPTIONS")
}

type saveSetsRequest struct {
	Sets []SetRecord `json:"sets"`
}

type saveSetsResponse struct {
	Saved int `json:"saved"`
}

func (h *Handler) handleSaveSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.save")
	defer span.End()

	var req saveSetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("save workout sets, unmarshal json params: %s", err)
		http.Error(w, "save workout sets failed", http.StatusBadRequest)
		return
	}
	if len(req.Sets) == 0 {
		http.Error(w, "no sets given", http.StatusBadRequest)
		return
	}

	records := make([]SetRecord, 0, len(req.Sets))
	for _, record := range req.Sets {
		if record.Date == "" || record.ExerciseID == "" {
			http.Error(w, "set record needs date and exerciseId", http.StatusBadRequest)
			span.SetStatus(codes.Error, "invalid-record")
			return
		}
		records = append(records, NormalizeRecord(record, h.catalog))
	}

	if err := h.log.Append(ctx, records); err != nil {
		log.Errorf("save workout sets: %s", err)
		http.Error(w, "save workout sets failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "append-failed")
		return
	}

	h.metricsManager.CounterWorkoutSetsLogged.Add(float64(len(records)))

	respJson, err := json.Marshal(saveSetsResponse{Saved: len(records)})
	if err != nil {
		log.Errorf("marshal save sets response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (h *Handler) handleGetLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.get")
	defer span.End()

	vars := mux.Vars(r)
	records, err := h.log.LogFor(ctx, vars["date"], vars["exerciseId"])
	if err != nil {
		log.Errorf("get workout log: %s", err)
		http.Error(w, "get workout log failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "read-failed")
		return
	}
	if records == nil {
		records = []SetRecord{}
	}

	recordsJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("marshal workout log: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, recordsJson)
}

func (h *Handler) handleBuildSets(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.buildsets")
	defer span.End()

	vars := mux.Vars(r)
	exercise, ok := h.catalog[vars["exerciseId"]]
	if !ok {
		http.Error(w, "unknown exercise", http.StatusNotFound)
		span.SetStatus(codes.Error, "unknown-exercise")
		return
	}

	records := BuildSets(exercise, vars["date"])
	recordsJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("marshal built sets: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, recordsJson)
}
