package coach

import (
	"encoding/json"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/telemetry/metrics"
	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
	"github.com/hourglassfit/hourglass/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// FallbackReply is what the user sees when the provider call fails, the
// conversation itself never errors out.
const FallbackReply = "Sorry, I couldn't get a response. " +
	"Please check your API key configuration and try again."

// Starters are the canned questions offered as chips above the chat box.
var Starters = []string{
	"How can I swap a salmon dinner to a vegan dinner with ~40g protein?",
	"I hit 12 reps on hip thrusts; how should I progress weight and reps?",
	"What are alternatives to Bulgarian split squats that still hit glutes well?",
}

type chatRequest struct {
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type Handler struct {
	client         *Client
	metricsManager *metrics.Manager
}

func NewHandler(client *Client, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		client:         client,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/chat", handler.handleChat).Methods("POST", "OPTIONS")
	router.HandleFunc("/starters", handler.handleStarters).Methods("GET", "OPTIONS")
}

func (handler *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.chat")
	defer span.End()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("coach chat, unmarshal json params: %s", err)
		http.Error(w, "coach chat failed", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "error, messages empty", http.StatusBadRequest)
		return
	}

	reply, err := handler.client.Ask(ctx, req.Messages)
	if err != nil {
		log.Errorf("coach chat, ask provider: %s", err)
		span.SetStatus(codes.Error, "provider-failed")
		reply = FallbackReply
	}

	handler.metricsManager.CounterCoachMessages.Inc()

	respJson, err := json.Marshal(chatResponse{Reply: reply})
	if err != nil {
		log.Errorf("marshal coach chat response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleStarters(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.starters")
	defer span.End()

	startersJson, err := json.Marshal(Starters)
	if err != nil {
		log.Errorf("marshal coach starters: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, startersJson)
}
