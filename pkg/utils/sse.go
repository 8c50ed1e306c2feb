package utils

import (
	"fmt"
	"net/http"
)

// SetupSSEHeaders marks the response as an event stream. Must be called
// before the first frame is written.
func SetupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// WriteSSEData writes a single data frame and flushes it immediately so the
// chunk reaches the client as produced.
func WriteSSEData(w http.ResponseWriter, flusher http.Flusher, payload []byte) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// WriteSSEDone terminates the event stream with the conventional sentinel.
func WriteSSEDone(w http.ResponseWriter, flusher http.Flusher) {
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
