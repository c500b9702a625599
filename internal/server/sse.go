package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/claude/restbell/internal/timer"
)

// handleTimerEvents streams committed timer mutations as server-sent
// events. Every connected surface renders from this stream, so none keeps
// a private countdown that could drift from the shared one.
func (s *Server) handleTimerEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel := s.timer.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Current state first so a freshly attached surface renders immediately.
	st := s.timer.State()
	if err := writeSSE(w, timer.Event{State: st, Display: st.Display()}); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				// Service closed; the stream ends with it.
				return
			}
			if err := writeSSE(w, ev); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, ev timer.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
