package http

import (
	"net/http"
	"time"

	commonhttp "github.com/AlibekovAA/account-hub/internal/common/http"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/common/mapper"
	"github.com/AlibekovAA/account-hub/internal/post/domain"
	"github.com/AlibekovAA/account-hub/internal/post/service"
)

type Handler struct {
	posts  *service.PostService
	log    *logger.Logger
	errors *commonhttp.ErrorHandler
}

func NewHandler(posts *service.PostService, requestTimeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		posts:  posts,
		log:    log,
		errors: commonhttp.NewErrorHandler(log),
	}

	timeout := commonhttp.WithTimeout(requestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/posts", timeout(h.create))
	mux.HandleFunc("GET /api/posts/{id}", timeout(h.getByID))
	mux.HandleFunc("PUT /api/posts/{id}", timeout(h.update))

	return mux
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !commonhttp.ReadJSON(w, r, &req) {
		return
	}

	post, err := h.posts.Create(r.Context(), domain.PostCreate{
		WriterID: req.WriterID,
		Content:  req.Content,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, mapper.PostToDTO(post))
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := commonhttp.RequireID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.PostToDTO(post))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := commonhttp.RequireID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if !commonhttp.ReadJSON(w, r, &req) {
		return
	}

	post, err := h.posts.Update(r.Context(), id, domain.PostUpdate{Content: req.Content})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.PostToDTO(post))
}
