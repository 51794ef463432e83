package dailylog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hourglassfit/hourglass/internal/telemetry/metrics"
	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
	"github.com/hourglassfit/hourglass/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// DefaultUserID: the app serves one person; rows are still keyed by user id
// so a future multi-user setup does not need a migration.
const DefaultUserID = "default"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=dailylog

type repo interface {
	SaveProfile(ctx context.Context, profile Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SaveSettings(ctx context.Context, userID string, settings Settings) error
	GetSettings(ctx context.Context, userID string) (Settings, error)
	SaveDailyLog(ctx context.Context, dailyLog DailyLog) error
	GetLogs(ctx context.Context, userID, start, end string) ([]DailyLog, error)
	DeleteAllUserData(ctx context.Context, userID string) error
}

type Handler struct {
	repo           repo
	metricsManager *metrics.Manager
}

func NewHandler(repo repo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/profile", h.handleSaveProfile).Methods("PUT", "OPTIONS")
	router.HandleFunc("/profile", h.handleGetProfile).Methods("GET", "OPTIONS")
	router.HandleFunc("/settings", h.handleSaveSettings).Methods("PUT", "OPTIONS")
	router.HandleFunc("/settings", h.handleGetSettings).Methods("GET", "OPTIONS")
	router.HandleFunc("/log", h.handleSaveLog).Methods("POST", "OPTIONS")
	router.HandleFunc("/logs", h.handleGetLogs).Methods("GET", "OPTIONS")
	router.HandleFunc("/export", h.handleExport).Methods("GET", "OPTIONS")
}

func userID(r *http.Request) string {
	if user := r.URL.Query().Get("user"); user != "" {
		return user
	}
	return DefaultUserID
}

func (h *Handler) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.profile.save")
	defer span.End()

	var profile Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("save profile, unmarshal json params: %s", err)
		http.Error(w, "save profile failed", http.StatusBadRequest)
		return
	}
	if profile.UserID == "" {
		profile.UserID = userID(r)
	}

	if err := h.repo.SaveProfile(ctx, profile); err != nil {
		log.Errorf("save profile: %s", err)
		http.Error(w, "save profile failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "save-failed")
		return
	}
	pkg.WriteTextResponseOK(w, "saved")
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.profile.get")
	defer span.End()

	profile, err := h.repo.GetProfile(ctx, userID(r))
	if errors.Is(err, ErrProfileNotFound) {
		http.Error(w, "profile not found", http.StatusNotFound)
		span.SetStatus(codes.Error, "not-found")
		return
	}
	if err != nil {
		log.Errorf("get profile: %s", err)
		http.Error(w, "get profile failed", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("marshal profile: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}

func (h *Handler) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.settings.save")
	defer span.End()

	var settings Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		log.Errorf("save settings, unmarshal json params: %s", err)
		http.Error(w, "save settings failed", http.StatusBadRequest)
		return
	}

	if err := h.repo.SaveSettings(ctx, userID(r), settings); err != nil {
		log.Errorf("save settings: %s", err)
		http.Error(w, "save settings failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "save-failed")
		return
	}
	pkg.WriteTextResponseOK(w, "saved")
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.settings.get")
	defer span.End()

	settings, err := h.repo.GetSettings(ctx, userID(r))
	if errors.Is(err, ErrSettingsNotFound) {
		http.Error(w, "settings not found", http.StatusNotFound)
		span.SetStatus(codes.Error, "not-found")
		return
	}
	if err != nil {
		log.Errorf("get settings: %s", err)
		http.Error(w, "get settings failed", http.StatusInternalServerError)
		return
	}

	settingsJson, err := json.Marshal(settings)
	if err != nil {
		log.Errorf("marshal settings: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, settingsJson)
}

func (h *Handler) handleSaveLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.save")
	defer span.End()

	var dailyLog DailyLog
	if err := json.NewDecoder(r.Body).Decode(&dailyLog); err != nil {
		log.Errorf("save daily log, unmarshal json params: %s", err)
		http.Error(w, "save daily log failed", http.StatusBadRequest)
		return
	}
	if dailyLog.UserID == "" {
		dailyLog.UserID = userID(r)
	}
	if dailyLog.Date == "" {
		dailyLog.Date = time.Now().Format("2006-01-02")
	}

	if err := h.repo.SaveDailyLog(ctx, dailyLog); err != nil {
		log.Errorf("save daily log: %s", err)
		http.Error(w, "save daily log failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "save-failed")
		return
	}

	h.metricsManager.CounterDailyLogsSaved.Inc()
	pkg.WriteResponse(w, pkg.ContentType.Text, "saved", http.StatusCreated)
}

func (h *Handler) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.logs.get")
	defer span.End()

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" {
		start = "1900-01-01"
	}
	if end == "" {
		end = "2999-12-31"
	}

	logs, err := h.repo.GetLogs(ctx, userID(r), start, end)
	if err != nil {
		log.Errorf("get daily logs: %s", err)
		http.Error(w, "get daily logs failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "get-failed")
		return
	}
	if logs == nil {
		logs = []DailyLog{}
	}

	logsJson, err := json.Marshal(logs)
	if err != nil {
		log.Errorf("marshal daily logs: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, logsJson)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.export")
	defer span.End()

	user := userID(r)
	logs, err := h.repo.GetLogs(ctx, user, "1900-01-01", "2999-12-31")
	if err != nil {
		log.Errorf("export daily logs: %s", err)
		http.Error(w, "export daily logs failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "export-failed")
		return
	}

	logsCSV, err := ExportLogsCSV(logs)
	if err != nil {
		log.Errorf("export daily logs, render csv: %s", err)
		http.Error(w, "export daily logs failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_logs.csv", user))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.CSV, logsCSV)
}

// HandleWipe removes every stored row of the user. Routed under the admin
// guarded danger zone path.
func (h *Handler) HandleWipe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.wipe")
	defer span.End()

	user := userID(r)
	if err := h.repo.DeleteAllUserData(ctx, user); err != nil {
		log.Errorf("wipe user data: %s", err)
		http.Error(w, "wipe user data failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "wipe-failed")
		return
	}

	log.Warnf("all stored data wiped for user: %s", user)
	pkg.WriteTextResponseOK(w, "wiped")
}
