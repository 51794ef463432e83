package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
	"github.com/hourglassfit/hourglass/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// CompletedExercisesProvider feeds completed set keys from the workout
// tracker into the streak stats.
type CompletedExercisesProvider interface {
	CompletedKeys(ctx context.Context) ([]string, error)
}

type Handler struct {
	store     *Store
	completed CompletedExercisesProvider
}

func NewHandler(store *Store, completed CompletedExercisesProvider) *Handler {
	return &Handler{
		store:     store,
		completed: completed,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", h.handleGet).Methods("GET", "OPTIONS")
	router.HandleFunc("", h.handleUpdate).Methods("PUT", "OPTIONS")
	router.HandleFunc("/weight", h.handleAddWeightEntry).Methods("POST", "OPTIONS")
	router.HandleFunc("/streaks", h.handleGetStreaks).Methods("GET", "OPTIONS")
	router.HandleFunc("/badges", h.handleGetBadges).Methods("GET", "OPTIONS")
	router.HandleFunc("/suggestions", h.handleGetSuggestions).Methods("GET", "OPTIONS")
	router.HandleFunc("/prefs", h.handleUpdatePrefs).Methods("PUT", "OPTIONS")
	router.HandleFunc("/reminders", h.handleUpdateReminders).Methods("PUT", "OPTIONS")
}

// load reads the stored progress, falling back to defaults when the file is
// missing or corrupt. Both cases are only logged, requests keep working.
func (h *Handler) load() *UserProgress {
	userProgress, err := h.store.Load()
	switch {
	case err == nil:
	case errors.Is(err, ErrNotExist):
		log.Tracef("user progress not stored yet, using defaults")
	case errors.Is(err, ErrCorrupt):
		log.Errorf("user progress corrupt, using defaults: %s", err)
	default:
		log.Errorf("load user progress: %s", err)
	}
	return userProgress
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	h.writeJSON(w, h.load())
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.update")
	defer span.End()

	var userProgress UserProgress
	if err := json.NewDecoder(r.Body).Decode(&userProgress); err != nil {
		log.Errorf("update progress, unmarshal json params: %s", err)
		http.Error(w, "update progress failed", http.StatusBadRequest)
		return
	}

	// net calories never come from the client
	for i := range userProgress.WeightEntries {
		e := &userProgress.WeightEntries[i]
		e.NetCalories = e.CaloriesIn - e.CaloriesOut
	}

	if err := h.store.Save(&userProgress); err != nil {
		log.Errorf("update progress: %s", err)
		http.Error(w, "update progress failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "save-failed")
		return
	}

	h.writeJSON(w, &userProgress)
}

func (h *Handler) handleAddWeightEntry(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.weight.add")
	defer span.End()

	var entry WeightEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("add weight entry, unmarshal json params: %s", err)
		http.Error(w, "add weight entry failed", http.StatusBadRequest)
		return
	}

	if entry.Date == "" {
		entry.Date = time.Now().Format("2006-01-02")
	}
	entry.NetCalories = entry.CaloriesIn - entry.CaloriesOut

	userProgress := h.load()
	userProgress.WeightEntries = append(userProgress.WeightEntries, entry)

	if err := h.store.Save(userProgress); err != nil {
		log.Errorf("add weight entry: %s", err)
		http.Error(w, "add weight entry failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "save-failed")
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("marshal weight entry: %s", err)
		http.Error(w, "add weight entry failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (h *Handler) stats(ctx context.Context, userProgress *UserProgress) Stats {
	completedKeys, err := h.completed.CompletedKeys(ctx)
	if err != nil {
		log.Errorf("get completed exercise keys: %s", err)
	}
	return ComputeStreaks(userProgress, completedKeys)
}

func (h *Handler) handleGetStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.streaks")
	defer span.End()

	h.writeJSON(w, h.stats(ctx, h.load()))
}

type badgeStatus struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Earned bool   `json:"earned"`
}

func (h *Handler) handleGetBadges(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.badges")
	defer span.End()

	userProgress := h.load()
	earned := CheckBadges(h.stats(ctx, userProgress))

	// the freshly computed set replaces the stored one
	userProgress.BadgesEarned = earned
	if err := h.store.Save(userProgress); err != nil {
		log.Errorf("save badges earned: %s", err)
	}

	earnedSet := make(map[string]bool, len(earned))
	for _, key := range earned {
		earnedSet[key] = true
	}

	statuses := make([]badgeStatus, 0, len(Badges))
	for _, badge := range Badges {
		statuses = append(statuses, badgeStatus{
			Key:    badge.Key,
			Label:  badge.Label,
			Earned: earnedSet[badge.Key],
		})
	}
	h.writeJSON(w, statuses)
}

func (h *Handler) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.suggestions")
	defer span.End()

	h.writeJSON(w, Suggestions(h.load()))
}

type prefsUpdateRequest struct {
	Prefs    *Prefs    `json:"prefs"`
	AITuning *AITuning `json:"ai_tuning"`
}

func (h *Handler) handleUpdatePrefs(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.prefs.update")
	defer span.End()

	var req prefsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update prefs, unmarshal json params: %s", err)
		http.Error(w, "update prefs failed", http.StatusBadRequest)
		return
	}

	userProgress := h.load()
	if req.Prefs != nil {
		userProgress.Prefs = *req.Prefs
	}
	if req.AITuning != nil {
		userProgress.AITuning = *req.AITuning
	}

	if err := h.store.Save(userProgress); err != nil {
		log.Errorf("update prefs: %s", err)
		http.Error(w, "update prefs failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "save-failed")
		return
	}
	h.writeJSON(w, userProgress)
}

func (h *Handler) handleUpdateReminders(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.reminders.update")
	defer span.End()

	var reminderPrefs ReminderPrefs
	if err := json.NewDecoder(r.Body).Decode(&reminderPrefs); err != nil {
		log.Errorf("update reminders, unmarshal json params: %s", err)
		http.Error(w, "update reminders failed", http.StatusBadRequest)
		return
	}

	userProgress := h.load()
	userProgress.ReminderPrefs = reminderPrefs

	if err := h.store.Save(userProgress); err != nil {
		log.Errorf("update reminders: %s", err)
		http.Error(w, "update reminders failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "save-failed")
		return
	}
	h.writeJSON(w, userProgress)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
