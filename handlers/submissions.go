package handlers

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"

	"freelancehub/exceptions"
	"freelancehub/middleware"
	"freelancehub/models"
	"freelancehub/services"
	"freelancehub/storage"

	"github.com/go-chi/chi/v5"
)

const uploadField = "file"

type SubmissionHandler struct {
	submissions *services.SubmissionService
	store       storage.Store
	maxBytes    int64
}

func NewSubmissionHandler(submissions *services.SubmissionService, store storage.Store, maxBytes int64) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		store:       store,
		maxBytes:    maxBytes,
	}
}

// Create handles the multipart upload for the task in the {id} segment.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, exceptions.ErrFileTooLarge)
			return
		}
		writeError(w, r, exceptions.ErrMissingFile)
		return
	}
	defer file.Close()

	submission, err := h.submissions.Create(r.Context(), chi.URLParam(r, "id"), user.ID, header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submission)
}

func (h *SubmissionHandler) ListForTask(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissions.ListForTask(r.Context(), chi.URLParam(r, "taskId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) Review(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	submission, err := h.submissions.Review(r.Context(), chi.URLParam(r, "id"), models.SubmissionStatus(req.Status), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submission)
}

// Download streams a stored archive.
func (h *SubmissionHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, err := h.store.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) || errors.Is(err, fs.ErrNotExist) {
			writeError(w, r, exceptions.ErrFileNotFound)
			return
		}
		writeError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", storage.ContentType(name))
	w.Header().Set("Content-Disposition", attachmentDisposition(name))
	if _, err := io.Copy(w, rc); err != nil {
		slog.ErrorContext(r.Context(), "download interrupted",
			slog.String("file", name),
			slog.String("error", err.Error()),
		)
	}
}

func attachmentDisposition(name string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}
