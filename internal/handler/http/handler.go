package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/lexaid/counsel/extract"
	"github.com/lexaid/counsel/fault"
	"github.com/lexaid/counsel/internal/service/ask"
	"github.com/lexaid/counsel/internal/service/ingest"
	"github.com/lexaid/counsel/scrape"
)

type Handler struct {
	uploads   *ingest.Service
	scrapes   *ingest.Service
	ask       *ask.Service
	scraper   *scrape.Scraper
	extractor *extract.Extractor
	options   Options
}

func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, Logging)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/upload", h.Upload).Methods(http.MethodPost)
	api.HandleFunc("/scrape", h.Scrape).Methods(http.MethodPost)
	api.HandleFunc("/ask", h.Ask).Methods(http.MethodPost)
	api.HandleFunc("/reconcile", h.Reconcile).Methods(http.MethodPost)
	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	return r
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// headroom for the multipart framing around the capped file
	r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxUploadBytes+(64<<10))

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "file size must be less than 2MB")
			return
		}
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > h.options.MaxUploadBytes {
		writeError(w, http.StatusBadRequest, "file size must be less than 2MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	text, err := h.extractor.Text(ctx, header.Filename, data)
	if err != nil {
		writeFault(w, err)
		return
	}

	if len(strings.TrimSpace(text)) == 0 {
		writeError(w, http.StatusBadRequest, "no text could be extracted from the file")
		return
	}

	result, err := h.uploads.Ingest(ctx, text, header.Filename)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Successfully processed %d chunks from %s", result.Chunks, result.Source),
		"chunks":  result.Chunks,
		"source":  result.Source,
	})
}

func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Url string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(strings.TrimSpace(req.Url)) == 0 {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	text, err := h.scraper.Fetch(ctx, req.Url)
	if err != nil {
		writeFault(w, err)
		return
	}

	if len(strings.TrimSpace(text)) == 0 {
		writeError(w, http.StatusBadRequest, "no text could be extracted from the page")
		return
	}

	result, err := h.scrapes.Ingest(ctx, text, req.Url)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Successfully processed %d chunks from %s", result.Chunks, result.Source),
		"chunks":  result.Chunks,
		"source":  result.Source,
	})
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "please provide a question")
		return
	}

	answer, err := h.ask.Ask(ctx, req.Question)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := h.uploads.Reconcile(ctx)
	if err != nil {
		writeFault(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reindexed": n})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeFault(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fault.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, fault.ErrUpstream):
		slog.Error("upstream failure", "error", err)
		writeError(w, http.StatusBadGateway, "upstream dependency unavailable")
	case errors.Is(err, fault.ErrGeneration):
		slog.Error("generation failure", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate answer")
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func NewHandler(uploads *ingest.Service, scrapes *ingest.Service, askSvc *ask.Service, scraper *scrape.Scraper, extractor *extract.Extractor, opts ...Option) *Handler {
	return &Handler{
		uploads:   uploads,
		scrapes:   scrapes,
		ask:       askSvc,
		scraper:   scraper,
		extractor: extractor,
		options:   NewOptions(opts...),
	}
}
