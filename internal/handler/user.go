package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile returns a user's public profile with follower/following/post
// counts. Signed-in viewers also get an is_following flag.
// GET /users/{nickname}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")
	if nickname == "" {
		httputil.WriteBadRequest(w, "Nickname is required")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	profile, err := h.userService.GetProfile(r.Context(), nickname, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetProfile handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's nickname and about_me.
// PUT /me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		var taken *model.NicknameTakenError
		switch {
		case errors.As(err, &taken):
			httputil.WriteJSON(w, http.StatusConflict, map[string]interface{}{
				"error": httputil.ErrorDetail{
					Code:    httputil.ErrCodeConflict,
					Message: taken.Error(),
				},
				"suggested_nickname": taken.Suggested,
			})
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] UpdateProfile handler: %v", err)
			httputil.WriteInternalError(w, "Failed to update profile")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
