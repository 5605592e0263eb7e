package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"parkd/internal/parking/broadcast"
)

// Events streams state snapshots as server-sent events. The first
// event is the snapshot at subscription time; one event follows every
// admission or release until the client disconnects.
func (h *ParkingHandler) Events(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// The stream outlives the server write timeout; clear the
	// per-request deadline.
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sub := broadcast.NewChannelSubscriber(16)
	handle := h.service.Subscribe(sub)
	defer h.service.Unsubscribe(handle)

	h.log.Info("Event stream opened", "handle", handle, "remote_addr", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			h.log.Info("Event stream closed by client", "handle", handle)
			return
		case view, open := <-sub.Updates():
			if !open {
				return
			}
			payload, err := json.Marshal(view)
			if err != nil {
				h.log.Error("Failed to encode snapshot", "handle", handle, "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				h.log.Warn("Event stream write failed", "handle", handle, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}
