package http

import (
	"net/http"
	"time"

	commonhttp "github.com/AlibekovAA/account-hub/internal/common/http"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/common/mapper"
	"github.com/AlibekovAA/account-hub/internal/user/domain"
	"github.com/AlibekovAA/account-hub/internal/user/service"
)

type HandlerConfig struct {
	VerifyRedirectURL string
	RequestTimeout    time.Duration
}

type Handler struct {
	users  *service.UserService
	cfg    HandlerConfig
	log    *logger.Logger
	errors *commonhttp.ErrorHandler
}

func NewHandler(users *service.UserService, cfg HandlerConfig, log *logger.Logger) http.Handler {
	h := &Handler{
		users:  users,
		cfg:    cfg,
		log:    log,
		errors: commonhttp.NewErrorHandler(log),
	}

	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", timeout(h.create))
	mux.HandleFunc("GET /api/users/me", timeout(h.getMyProfile))
	mux.HandleFunc("PUT /api/users/me", timeout(h.updateMyProfile))
	mux.HandleFunc("GET /api/users/{id}", timeout(h.getByID))
	mux.HandleFunc("GET /api/users/{id}/verify", timeout(h.verifyEmail))

	return mux
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !commonhttp.ReadJSON(w, r, &req) {
		return
	}

	user, err := h.users.Create(r.Context(), domain.UserCreate{
		Email:    req.Email,
		Nickname: req.Nickname,
		Address:  req.Address,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, mapper.UserToDTO(user))
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := commonhttp.RequireID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.UserToDTO(user))
}

// verifyEmail is opened from the certification mail, so it answers with a
// redirect to the front end instead of JSON.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := commonhttp.RequireID(w, r, "id")
	if !ok {
		return
	}

	code := r.URL.Query().Get("certificationCode")
	if err := h.users.VerifyEmail(r.Context(), id, code); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	http.Redirect(w, r, h.cfg.VerifyRedirectURL, http.StatusFound)
}

func (h *Handler) getMyProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := commonhttp.RequireEmailHeader(w, r)
	if !ok {
		return
	}

	ctx := r.Context()

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if err := h.users.Login(ctx, user.ID); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	user, err = h.users.GetByEmail(ctx, email)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.MyProfileToDTO(user))
}

func (h *Handler) updateMyProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := commonhttp.RequireEmailHeader(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !commonhttp.ReadJSON(w, r, &req) {
		return
	}

	ctx := r.Context()

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	user, err = h.users.Update(ctx, user.ID, domain.UserUpdate{
		Nickname: req.Nickname,
		Address:  req.Address,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.MyProfileToDTO(user))
}
