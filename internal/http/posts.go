package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/pastel/internal/service"
	"github.com/aussiebroadwan/pastel/pkg/httpx"
)

// PostsHandler serves post CRUD and the feed.
type PostsHandler struct {
	PostService *service.PostService
}

type createPostRequest struct {
	Caption string   `json:"caption"`
	Images  []string `json:"images"`
}

func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), identity.Subject, service.CreatePostParams{
		Caption: req.Caption,
		Images:  req.Images,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, post)
}

func (h *PostsHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
		return
	}

	posts, err := h.PostService.Feed(r.Context(), identity.Subject)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	posts, err := h.PostService.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.PostService.GetPost(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

type updatePostRequest struct {
	Caption *string  `json:"caption"`
	Images  []string `json:"images"`
}

func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
		return
	}

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), identity.Subject, id, service.UpdatePostParams{
		Caption: req.Caption,
		Images:  req.Images,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
		return
	}

	if err := h.PostService.DeletePost(r.Context(), identity.Subject, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
