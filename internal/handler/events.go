package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/knorii/tabiplan/internal/domain"
)

// StreamEvents handles GET /events: a Server-Sent Events stream carrying one
// "change" event per document save. Clients use it to refresh after another
// tab or device wrote. A slow client drops events rather than blocking the
// writer; the stream signals that a change happened, not what changed.
func (s *Server) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	changes := make(chan domain.Document, 8)
	unsubscribe := s.data.Subscribe(func(doc domain.Document) {
		select {
		case changes <- doc:
		default:
		}
	})
	defer unsubscribe()

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case doc := <-changes:
			fmt.Fprintf(w, "event: change\ndata: {\"updatedAt\":%q}\n\n", doc.UpdatedAt.Format(time.RFC3339))
			flusher.Flush()
		}
	}
}
