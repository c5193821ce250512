package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
	pageSize    int
}

func NewPostHandler(postService *service.PostService, pageSize int) *PostHandler {
	return &PostHandler{
		postService: postService,
		pageSize:    pageSize,
	}
}

// CreatePost publishes a new post for the authenticated user. The post
// language is detected server-side and stored alongside the body.
// POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req.Body)
	if err != nil {
		log.Printf("[ERROR] CreatePost handler: %v", err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// GetPost returns a single post by ID.
// GET /posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] GetPost handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// DeletePost removes a post. Only the author can delete; deletion is
// permanent.
// DELETE /posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	if err := h.postService.Delete(r.Context(), postID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You can only delete your own posts")
		default:
			log.Printf("[ERROR] DeletePost handler: %v", err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted",
	})
}

// GetUserPosts lists a user's posts, newest first.
// GET /users/{nickname}/posts?page=N
func (h *PostHandler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")
	if nickname == "" {
		httputil.WriteBadRequest(w, "Nickname is required")
		return
	}

	result, err := h.postService.ListByUser(r.Context(), nickname, parsePage(r), h.pageSize)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetUserPosts handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
