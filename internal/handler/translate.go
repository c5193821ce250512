package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type TranslateHandler struct {
	translateClient *service.TranslateClient
}

func NewTranslateHandler(translateClient *service.TranslateClient) *TranslateHandler {
	return &TranslateHandler{
		translateClient: translateClient,
	}
}

// Translate forwards a post body to the external translation service and
// returns the translated text. Upstream failures map to 502/503 so clients
// can tell "try later" from "broken request".
// POST /translate
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.TranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	result, err := h.translateClient.Translate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTranslationNotConfigured):
			httputil.WriteError(w, http.StatusServiceUnavailable, httputil.ErrCodeUpstream,
				"Translation service is not configured")
		case errors.Is(err, model.ErrTranslationUnavailable):
			log.Printf("[ERROR] Translate handler: %v", err)
			httputil.WriteError(w, http.StatusBadGateway, httputil.ErrCodeUpstream,
				"Translation service is unavailable")
		case errors.Is(err, model.ErrTranslationMalformed):
			log.Printf("[ERROR] Translate handler: %v", err)
			httputil.WriteError(w, http.StatusBadGateway, httputil.ErrCodeUpstream,
				"Translation service returned an unexpected response")
		default:
			log.Printf("[ERROR] Translate handler: %v", err)
			httputil.WriteInternalError(w, "Failed to translate text")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
