package program

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
	"github.com/hourglassfit/hourglass/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/split", h.handleGetSplit).Methods("GET", "OPTIONS")
	router.HandleFunc("/level/{level}/day/{day}", h.handleGetWorkout).Methods("GET", "OPTIONS")
	router.HandleFunc("/meals", h.handleGetMeals).Methods("GET", "OPTIONS")
	router.HandleFunc("/exercises", h.handleGetExercises).Methods("GET", "OPTIONS")
	router.HandleFunc("/alternatives/{exerciseId}", h.handleGetAlternatives).Methods("GET", "OPTIONS")
}

func (h *Handler) handleGetSplit(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.split")
	defer span.End()

	splitJson, err := json.Marshal(ProgramSplit)
	if err != nil {
		log.Errorf("marshal program split: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, splitJson)
}

type workoutDayResponse struct {
	Level     int        `json:"level"`
	Day       string     `json:"day"`
	Label     string     `json:"label"`
	Exercises []Exercise `json:"exercises"`
}

func (h *Handler) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.workout")
	defer span.End()

	vars := mux.Vars(r)
	level, err := strconv.Atoi(vars["level"])
	if err != nil || (level != 1 && level != 2) {
		http.Error(w, "invalid level", http.StatusBadRequest)
		span.SetStatus(codes.Error, "invalid-level")
		return
	}

	day := vars["day"]
	schedule, ok := ProgramSplit[fmt.Sprintf("Level %d", level)]
	if !ok {
		http.Error(w, "invalid level", http.StatusBadRequest)
		return
	}
	label, ok := schedule[day]
	if !ok {
		http.Error(w, "invalid day", http.StatusBadRequest)
		span.SetStatus(codes.Error, "invalid-day")
		return
	}

	resp := workoutDayResponse{
		Level:     level,
		Day:       day,
		Label:     label,
		Exercises: WorkoutForDay(level, day, label),
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal workout day: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (h *Handler) handleGetMeals(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.meals")
	defer span.End()

	mealsJson, err := json.Marshal(WeeklyMeals)
	if err != nil {
		log.Errorf("marshal weekly meals: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, mealsJson)
}

type exerciseListItem struct {
	Exercise
	ID string `json:"id"`
}

func (h *Handler) handleGetExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.exercises")
	defer span.End()

	all := AllExercises()
	items := make([]exerciseListItem, 0, len(all))
	for _, ex := range all {
		items = append(items, exerciseListItem{
			Exercise: ex,
			ID:       ExerciseID(ex.Name),
		})
	}

	itemsJson, err := json.Marshal(items)
	if err != nil {
		log.Errorf("marshal exercises: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, itemsJson)
}

func (h *Handler) handleGetAlternatives(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.alternatives")
	defer span.End()

	exerciseID := mux.Vars(r)["exerciseId"]
	alternatives, ok := ExerciseAlternatives[exerciseID]
	if !ok {
		alternatives = map[string][]string{}
	}

	altJson, err := json.Marshal(alternatives)
	if err != nil {
		log.Errorf("marshal exercise alternatives: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, altJson)
}
