package httpapi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/grouping"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/middleware"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/roster"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/service"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/storage"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/eventapi"
)

// uploadField is the multipart form field holding the CSV file.
const uploadField = "file"

type uploadResponse struct {
	Added  int              `json:"added"`
	Roster *eventapi.Roster `json:"roster"`
}

// sessionAuth accepts the session token as a Bearer header, or as a token
// query parameter so plain download links work.
func (a *API) sessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token, _ = middleware.BearerToken(r.Header)
		}

		sessionID := mux.Vars(r)["id"]
		if err := a.jwtManager.Authorize(token, sessionID); err != nil {
			slog.Warn("File request denied", "session_id", sessionID, "path", r.URL.Path, "error", err)
			writeError(w, middleware.StatusCode(err), err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleUploadCSV appends every cell of an uploaded CSV to the participant
// list. The body is either the raw file or a multipart form.
func (a *API) handleUploadCSV(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.MaxUploadBytes)

	var body io.Reader = r.Body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		file, _, err := r.FormFile(uploadField)
		if err != nil {
			status := http.StatusBadRequest
			if tooLarge(err) {
				status = http.StatusRequestEntityTooLarge
			}
			writeError(w, status, fmt.Errorf("missing %q file field: %w", uploadField, err))
			return
		}
		defer file.Close()
		body = file
	}

	rs, added, err := a.manager.AddCSV(r.Context(), sessionID, body)
	if err != nil {
		writeError(w, uploadStatus(err), err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Added:  added,
		Roster: service.RosterMessage(rs),
	})
}

func tooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	return errors.As(err, &maxBytes)
}

func uploadStatus(err error) int {
	switch {
	case tooLarge(err):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, roster.ErrMalformedCSV):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleExportCSV downloads the current partition.
func (a *API) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	data, err := a.manager.ExportGroups(r.Context(), sessionID)
	switch {
	case errors.Is(err, grouping.ErrNothingToExport), errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		slog.Error("Export failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", grouping.ExportContentType)
	w.Header().Set("Content-Disposition", contentDisposition(grouping.ExportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("Failed to write export", "session_id", sessionID, "error", err)
	}
}

// contentDisposition names an attachment with a non-ASCII file name, with
// an ASCII fallback for old clients.
func contentDisposition(filename string) string {
	return fmt.Sprintf(`attachment; filename="groups.csv"; filename*=UTF-8''%s`, url.PathEscape(filename))
}
