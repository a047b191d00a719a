package public

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// mediaHandler streams a blob stored in the document database. Registered
// only when the GridFS blob backend is selected; its view URLs point here.
func (h *Handler) mediaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			http.NotFound(w, r)
			return
		}

		stream, contentType, err := h.media.Open(id)
		if err != nil {
			h.logger.Warn("stored file fetch failed", zap.String("id", id), zap.Error(err))
			http.NotFound(w, r)
			return
		}
		defer stream.Close()

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		if _, err := io.Copy(w, stream); err != nil {
			h.logger.Warn("stored file stream interrupted", zap.String("id", id), zap.Error(err))
		}
	}
}
