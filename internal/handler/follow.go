package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
	pageSize      int
}

func NewFollowHandler(followService *service.FollowService, pageSize int) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		pageSize:      pageSize,
	}
}

// Follow creates a follow edge from the authenticated user to the target.
// POST /users/{nickname}/follow
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	nickname := chi.URLParam(r, "nickname")
	if nickname == "" {
		httputil.WriteBadRequest(w, "Nickname is required")
		return
	}

	target, err := h.followService.Follow(r.Context(), followerID, nickname)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "You cannot follow yourself")
		case errors.Is(err, model.ErrAlreadyFollowing):
			httputil.WriteConflict(w, "Already following this user")
		default:
			log.Printf("[ERROR] Follow handler: %v", err)
			httputil.WriteInternalError(w, "Failed to follow user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "You are now following " + target.Nickname,
	})
}

// Unfollow removes the follow edge from the authenticated user to the target.
// DELETE /users/{nickname}/follow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	nickname := chi.URLParam(r, "nickname")
	if nickname == "" {
		httputil.WriteBadRequest(w, "Nickname is required")
		return
	}

	target, err := h.followService.Unfollow(r.Context(), followerID, nickname)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrCannotUnfollowSelf):
			httputil.WriteBadRequest(w, "You cannot unfollow yourself")
		case errors.Is(err, model.ErrNotFollowing):
			httputil.WriteConflict(w, "Not following this user")
		default:
			log.Printf("[ERROR] Unfollow handler: %v", err)
			httputil.WriteInternalError(w, "Failed to unfollow user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "You are no longer following " + target.Nickname,
	})
}

// GetFollowers lists a user's followers, newest edge first.
// GET /users/{nickname}/followers
func (h *FollowHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")
	if nickname == "" {
		httputil.WriteBadRequest(w, "Nickname is required")
		return
	}

	result, err := h.followService.GetFollowers(r.Context(), nickname, parsePage(r), h.pageSize)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetFollowers handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch followers")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// GetFollowing lists the users a user follows, newest edge first.
// GET /users/{nickname}/following
func (h *FollowHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")
	if nickname == "" {
		httputil.WriteBadRequest(w, "Nickname is required")
		return
	}

	result, err := h.followService.GetFollowing(r.Context(), nickname, parsePage(r), h.pageSize)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetFollowing handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch following")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
