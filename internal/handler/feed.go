package handler

import (
	"log"
	"net/http"

	"microblog/internal/httputil"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
	pageSize    int
}

func NewFeedHandler(feedService *service.FeedService, pageSize int) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		pageSize:    pageSize,
	}
}

// GetFeed returns the authenticated user's home feed: posts by followed
// users (their own included), newest first.
// GET /feed?page=N
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	feed, err := h.feedService.FollowedPosts(r.Context(), userID, parsePage(r), h.pageSize)
	if err != nil {
		log.Printf("[ERROR] GetFeed handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, feed)
}
