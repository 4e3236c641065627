package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/mediavault/internal/api"
	"github.com/dmitrijs2005/mediavault/internal/media"
	"github.com/dmitrijs2005/mediavault/internal/staging"
)

// Handler returns the routing tree wrapped in the middleware chain.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /v1/media", s.handleMedia)
	mux.HandleFunc("GET /v1/media/staged/{name}", s.handleStaged)

	var h http.Handler = mux
	h = s.apiKeyAuth(h)
	h = s.rateLimit(h)
	h = s.secureHeaders(h)
	h = s.logRequests(h)
	h = s.requestID(h)
	return h
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}

// GET /healthz
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Service: api.ServiceName})
}

// maxRequestBody bounds the POST body. Requests carry a URL, a short secret
// and a category name, so 1 MiB is generous.
const maxRequestBody = 1 << 20

// POST /v1/media
func (s *HTTPServer) handleMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req api.MediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.URL == "" || req.Secret == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: url, secret, category")
		return
	}

	category, err := media.ParseCategory(req.Category)
	if err != nil {
		s.respondMediaError(ctx, w, err)
		return
	}

	keys, err := media.Expand(req.Secret, req.Category)
	if err != nil {
		s.respondMediaError(ctx, w, err)
		return
	}
	defer keys.Wipe()

	plaintext, err := s.media.DecryptFromURL(ctx, req.URL, keys)
	if err != nil {
		s.respondMediaError(ctx, w, err)
		return
	}

	contentType, err := category.ContentType()
	if err != nil {
		s.respondMediaError(ctx, w, err)
		return
	}
	ext, err := category.Extension()
	if err != nil {
		s.respondMediaError(ctx, w, err)
		return
	}

	if s.config.StagingDir != "" {
		name, err := staging.Write(s.config.StagingDir, ext, plaintext)
		if err != nil {
			// Staging is best effort, the response still carries the payload.
			s.logger.Warn(ctx, "staging failed", "error", err.Error())
		} else {
			w.Header().Set(api.StagedNameHeader, name)
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "media"+ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(plaintext)
}

// GET /v1/media/staged/{name}
func (s *HTTPServer) handleStaged(w http.ResponseWriter, r *http.Request) {
	if s.config.StagingDir == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	name := r.PathValue("name")

	path, err := staging.Resolve(s.config.StagingDir, name)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	category, err := media.CategoryForExtension(filepath.Ext(name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	contentType, err := category.ContentType()
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// respondMediaError translates a pipeline error into a transport status.
// Only the safe message crosses the boundary, the full chain goes to the log.
func (s *HTTPServer) respondMediaError(ctx context.Context, w http.ResponseWriter, err error) {
	s.logger.Error(ctx, err.Error())

	var status int
	switch media.KindOf(err) {
	case media.KindValidation:
		status = http.StatusBadRequest
	case media.KindNetwork:
		status = http.StatusBadGateway
	case media.KindDecryption:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}

	writeError(w, status, media.MessageOf(err))
}
