package chat

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cvescope/backend/internal/analysis/confidence"
	chatmodel "github.com/cvescope/backend/internal/model/chat"
	"github.com/cvescope/backend/internal/service/inference"
	"github.com/cvescope/backend/pkg/utils"
)

// errGeneric is the only error body callers ever see. Parse failures and
// upstream failures are indistinguishable on purpose.
const errGeneric = "Failed to process request"

// Handler proxies chat completions to the inference service, injecting the
// classifier system prompt when the caller supplies none.
type Handler struct {
	inference inference.Service
	prompt    string
	stream    bool
}

// New creates the chat handler. svc may be nil when inference is not
// configured; every request then reports the generic failure.
func New(svc inference.Service, systemPrompt string, stream bool) *Handler {
	return &Handler{
		inference: svc,
		prompt:    systemPrompt,
		stream:    stream,
	}
}

// RegisterRoutes registers the chat endpoint on the API subrouter.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	var payload chatmodel.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("[chat] id=%s invalid request body: %v", reqID, err)
		utils.RespondError(w, http.StatusInternalServerError, errGeneric)
		return
	}

	if h.inference == nil {
		log.Printf("[chat] id=%s inference service unavailable", reqID)
		utils.RespondError(w, http.StatusInternalServerError, errGeneric)
		return
	}

	msgs := chatmodel.WithSystem(payload.Messages, h.prompt)
	log.Printf("[chat] id=%s forwarding %d messages", reqID, len(msgs))

	if h.stream {
		h.streamResponse(w, r, reqID, msgs)
		return
	}
	h.completeResponse(w, r, reqID, msgs)
}

// streamResponse forwards model output as SSE frames in arrival order. Once
// the stream has started there is no salvage: a mid-stream failure just ends
// the response.
func (h *Handler) streamResponse(w http.ResponseWriter, r *http.Request, reqID string, msgs []chatmodel.Message) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Printf("[chat] id=%s streaming unsupported by response writer", reqID)
		utils.RespondError(w, http.StatusInternalServerError, errGeneric)
		return
	}

	stream, err := h.inference.Stream(r.Context(), msgs)
	if err != nil {
		log.Printf("[chat] id=%s inference call failed: %v", reqID, err)
		utils.RespondError(w, http.StatusInternalServerError, errGeneric)
		return
	}
	defer stream.Close()

	utils.SetupSSEHeaders(w)

	for {
		delta, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			log.Printf("[chat] id=%s stream interrupted: %v", reqID, recvErr)
			return
		}

		frame, err := json.Marshal(map[string]string{"response": delta})
		if err != nil {
			log.Printf("[chat] id=%s marshal chunk: %v", reqID, err)
			return
		}
		if err := utils.WriteSSEData(w, flusher, frame); err != nil {
			log.Printf("[chat] id=%s client gone: %v", reqID, err)
			return
		}
	}

	utils.WriteSSEDone(w, flusher)
	log.Printf("[chat] id=%s stream complete", reqID)
}

func (h *Handler) completeResponse(w http.ResponseWriter, r *http.Request, reqID string, msgs []chatmodel.Message) {
	reply, err := h.inference.Complete(r.Context(), msgs)
	if err != nil {
		log.Printf("[chat] id=%s inference call failed: %v", reqID, err)
		utils.RespondError(w, http.StatusInternalServerError, errGeneric)
		return
	}

	if scores, err := confidence.Scores(reply); err == nil {
		log.Printf("[chat] id=%s scores=%v", reqID, scores)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"response": reply})
}
