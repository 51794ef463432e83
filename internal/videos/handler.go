package videos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/hourglassfit/hourglass/internal/telemetry/metrics"
	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"
	"github.com/hourglassfit/hourglass/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type mappingSetRequest struct {
	URL string `json:"url"`
}

type rateRequest struct {
	Path  string  `json:"path"`
	Delta float64 `json:"delta"`
}

type flagRequest struct {
	Path string `json:"path"`
}

type Handler struct {
	mapping        *MappingStore
	library        *Library
	media          *MediaStore
	metricsManager *metrics.Manager
}

func NewHandler(
	mapping *MappingStore,
	library *Library,
	media *MediaStore,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		mapping:        mapping,
		library:        library,
		media:          media,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/mapping", handler.handleGetMapping).Methods("GET", "OPTIONS")
	router.HandleFunc("/mapping/{exerciseId}", handler.handleSetMapping).Methods("PUT", "OPTIONS")
	router.HandleFunc("/mapping/{exerciseId}", handler.handleDeleteMapping).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/library/{exerciseKey}", handler.handleGetLibrary).Methods("GET", "OPTIONS")
	router.HandleFunc("/library/{exerciseKey}", handler.handleAddToLibrary).Methods("POST", "OPTIONS")
	router.HandleFunc("/library/{exerciseKey}/rate", handler.handleRate).Methods("POST", "OPTIONS")
	router.HandleFunc("/library/{exerciseKey}/flag", handler.handleFlag).Methods("POST", "OPTIONS")
	router.HandleFunc("/upload/{slug}", handler.handleUpload).Methods("POST", "OPTIONS")
	router.HandleFunc("/file/{slug}", handler.handleGetFile).Methods("GET", "OPTIONS")
}

func (handler *Handler) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.mapping.get")
	defer span.End()

	mappingJson, err := json.Marshal(handler.mapping.All())
	if err != nil {
		log.Errorf("marshal video mapping: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, mappingJson)
}

func (handler *Handler) handleSetMapping(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.mapping.set")
	defer span.End()

	exerciseID := mux.Vars(r)["exerciseId"]

	var req mappingSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("set video mapping, unmarshal json params: %s", err)
		http.Error(w, "set video mapping failed", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "error, video url empty", http.StatusBadRequest)
		return
	}

	if err := handler.mapping.Set(exerciseID, req.URL); err != nil {
		log.Errorf("set video mapping [%s]: %s", exerciseID, err)
		http.Error(w, "set video mapping failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "set-failed")
		return
	}
	pkg.WriteTextResponseOK(w, fmt.Sprintf("saved:%s", exerciseID))
}

func (handler *Handler) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.mapping.delete")
	defer span.End()

	exerciseID := mux.Vars(r)["exerciseId"]

	if err := handler.mapping.Delete(exerciseID); err != nil {
		if errors.Is(err, ErrMappingNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			span.SetStatus(codes.Error, "not-found")
			return
		}
		log.Errorf("delete video mapping [%s]: %s", exerciseID, err)
		http.Error(w, "delete video mapping failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%s", exerciseID))
}

func (handler *Handler) handleGetLibrary(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.library.get")
	defer span.End()

	exerciseKey := mux.Vars(r)["exerciseKey"]

	videos := handler.library.VideosFor(exerciseKey)
	if videos == nil {
		videos = []*VideoFile{}
	}

	videosJson, err := json.Marshal(videos)
	if err != nil {
		log.Errorf("marshal video library: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, videosJson)
}

func (handler *Handler) handleAddToLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.library.add")
	defer span.End()

	exerciseKey := mux.Vars(r)["exerciseKey"]

	savedPath, err := handler.saveUploadedVideo(ctx, w, r, exerciseKey)
	if err != nil {
		// response already written
		span.SetStatus(codes.Error, "upload-failed")
		return
	}

	uploader := r.FormValue("uploader")
	if uploader == "" {
		uploader = "user"
	}

	if err := handler.library.AddVideo(exerciseKey, savedPath, uploader); err != nil {
		log.Errorf("add video to library [%s]: %s", exerciseKey, err)
		http.Error(w, "add video to library failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "add-failed")
		return
	}

	handler.metricsManager.CounterVideoUploads.Inc()
	pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("added:%s", savedPath), http.StatusCreated)
}

func (handler *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.library.rate")
	defer span.End()

	exerciseKey := mux.Vars(r)["exerciseKey"]

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("rate video, unmarshal json params: %s", err)
		http.Error(w, "rate video failed", http.StatusBadRequest)
		return
	}
	if req.Delta != RatingLike && req.Delta != RatingDislike {
		http.Error(w, "error, invalid rating", http.StatusBadRequest)
		return
	}

	if err := handler.library.Rate(exerciseKey, req.Path, req.Delta); err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			span.SetStatus(codes.Error, "not-found")
			return
		}
		log.Errorf("rate video [%s]: %s", exerciseKey, err)
		http.Error(w, "rate video failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, "rated")
}

func (handler *Handler) handleFlag(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.library.flag")
	defer span.End()

	exerciseKey := mux.Vars(r)["exerciseKey"]

	var req flagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("flag video, unmarshal json params: %s", err)
		http.Error(w, "flag video failed", http.StatusBadRequest)
		return
	}

	if err := handler.library.Flag(exerciseKey, req.Path); err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			span.SetStatus(codes.Error, "not-found")
			return
		}
		log.Errorf("flag video [%s]: %s", exerciseKey, err)
		http.Error(w, "flag video failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, "flagged")
}

// handleUpload stores a video file and points the exercise mapping at it.
func (handler *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.upload")
	defer span.End()

	slug := mux.Vars(r)["slug"]

	savedPath, err := handler.saveUploadedVideo(ctx, w, r, slug)
	if err != nil {
		// response already written
		span.SetStatus(codes.Error, "upload-failed")
		return
	}

	if err := handler.mapping.Set(slug, savedPath); err != nil {
		log.Errorf("upload video, set mapping [%s]: %s", slug, err)
		http.Error(w, "upload video failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "set-mapping-failed")
		return
	}

	handler.metricsManager.CounterVideoUploads.Inc()
	log.Tracef("new video uploaded for [%s]: %s", slug, savedPath)
	pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("added:%s", savedPath), http.StatusCreated)
}

func (handler *Handler) handleGetFile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.file.get")
	defer span.End()

	slug := mux.Vars(r)["slug"]

	videoPath, err := handler.media.FindLatest(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			span.SetStatus(codes.Error, "not-found")
			return
		}
		log.Errorf("find video [%s]: %s", slug, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	file, err := os.Open(videoPath)
	if err != nil {
		log.Errorf("open video [%s]: %s", videoPath, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.Errorf("stat video [%s]: %s", videoPath, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

// saveUploadedVideo reads the multipart "file" part and stores it. On error
// it writes the HTTP error response itself and returns a non-nil error.
func (handler *Handler) saveUploadedVideo(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	slug string,
) (string, error) {
	if err := r.ParseMultipartForm(handler.media.maxBytes); err != nil {
		log.Errorf("upload video, parse multipart form: %s", err)
		http.Error(w, "internal error or file too big", http.StatusBadRequest)
		return "", err
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		log.Errorf("upload video, get form file: %s", err)
		http.Error(w, "error, video file missing", http.StatusBadRequest)
		return "", err
	}
	defer file.Close()

	savedPath, err := handler.media.Save(ctx, slug, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, ErrVideoTooBig) {
			http.Error(w, ErrVideoTooBig.Error(), http.StatusRequestEntityTooLarge)
			return "", err
		}
		log.Errorf("upload video [%s]: %s", slug, err)
		http.Error(w, "upload video failed", http.StatusInternalServerError)
		return "", err
	}
	return savedPath, nil
}
