package community

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/progress"
	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
	"github.com/hourglassfit/hourglass/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const chatHistoryLimit = 10

type progressStore interface {
	Load() (*progress.UserProgress, error)
	Save(userProgress *progress.UserProgress) error
}

type completedExercisesProvider interface {
	CompletedKeys(ctx context.Context) ([]string, error)
}

type joinRequest struct {
	Challenge   string `json:"challenge"`
	DisplayName string `json:"display_name"`
}

type chatPostRequest struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

type challengesResponse struct {
	Challenges []string   `json:"challenges"`
	Joined     Membership `json:"joined"`
}

type Handler struct {
	store         *Store
	progressStore progressStore
	completed     completedExercisesProvider
}

func NewHandler(
	store *Store,
	progressStore progressStore,
	completed completedExercisesProvider,
) *Handler {
	return &Handler{
		store:         store,
		progressStore: progressStore,
		completed:     completed,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/challenges", handler.handleGetChallenges).Methods("GET", "OPTIONS")
	router.HandleFunc("/join", handler.handleJoin).Methods("POST", "OPTIONS")
	router.HandleFunc("/leaderboard", handler.handleGetLeaderboard).Methods("GET", "OPTIONS")
	router.HandleFunc("/chat", handler.handleGetChat).Methods("GET", "OPTIONS")
	router.HandleFunc("/chat", handler.handlePostChat).Methods("POST", "OPTIONS")
}

func (handler *Handler) handleGetChallenges(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.community.challenges")
	defer span.End()

	handler.writeJSON(w, challengesResponse{
		Challenges: Challenges,
		Joined:     handler.store.Membership(),
	})
}

func (handler *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.community.join")
	defer span.End()

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("join challenge, unmarshal json params: %s", err)
		http.Error(w, "join challenge failed", http.StatusBadRequest)
		return
	}
	if req.DisplayName == "" {
		http.Error(w, "error, display name empty", http.StatusBadRequest)
		return
	}
	if !ValidChallenge(req.Challenge) {
		http.Error(w, "error, unknown challenge", http.StatusBadRequest)
		return
	}

	handler.store.Join(req.Challenge, req.DisplayName)

	// the display name survives restarts together with the rest of the
	// user progress
	userProgress := handler.loadProgress()
	userProgress.DisplayName = req.DisplayName
	if err := handler.progressStore.Save(userProgress); err != nil {
		log.Errorf("join challenge, save display name: %s", err)
		http.Error(w, "join challenge failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "save-failed")
		return
	}

	pkg.WriteTextResponseOK(w, "joined")
}

func (handler *Handler) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.community.leaderboard")
	defer span.End()

	completedKeys, err := handler.completed.CompletedKeys(ctx)
	if err != nil {
		log.Errorf("leaderboard, get completed exercise keys: %s", err)
	}

	displayName := handler.store.Membership().DisplayName
	if displayName == "" {
		displayName = handler.loadProgress().DisplayName
	}

	handler.writeJSON(w, Leaderboard(displayName, len(completedKeys)))
}

func (handler *Handler) handleGetChat(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.community.chat.get")
	defer span.End()

	messages := handler.store.LastChat(chatHistoryLimit)
	if messages == nil {
		messages = []ChatMessage{}
	}
	handler.writeJSON(w, messages)
}

func (handler *Handler) handlePostChat(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.community.chat.post")
	defer span.End()

	var req chatPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("post chat message, unmarshal json params: %s", err)
		http.Error(w, "post chat message failed", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "error, message empty", http.StatusBadRequest)
		return
	}

	name := req.Name
	if name == "" {
		name = handler.store.Membership().DisplayName
	}
	if name == "" {
		http.Error(w, "please set your display name first", http.StatusBadRequest)
		return
	}

	message := handler.store.AddChatMessage(name, req.Content)

	messageJson, err := json.Marshal(message)
	if err != nil {
		log.Errorf("marshal chat message: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, messageJson, http.StatusCreated)
}

// loadProgress tolerates a missing or broken progress file, community
// features still work with defaults.
func (handler *Handler) loadProgress() *progress.UserProgress {
	userProgress, err := handler.progressStore.Load()
	if err != nil && !errors.Is(err, progress.ErrNotExist) {
		log.Errorf("load user progress: %s", err)
	}
	return userProgress
}

func (handler *Handler) writeJSON(w http.ResponseWriter, value any) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, valueJson)
}
