package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/auth"
	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/store"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=255"`
}

type userView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

func viewUser(u *models.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, Avatar: u.Avatar, CreatedAt: u.CreatedAt}
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request, status int, message string, u *models.User) {
	token, expires, err := h.Issuer.CreateToken(u.ID, u.Username)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, status, message, map[string]any{
		"user":      viewUser(u),
		"token":     token,
		"expiresAt": expires,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
	}
	if err := h.Store.CreateUser(r.Context(), user); err != nil {
		h.fail(w, r, err)
		return
	}
	h.issue(w, r, http.StatusCreated, "User registered successfully", user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	invalid := apperr.Unauthorized("invalid credentials")
	user, err := h.Store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			err = invalid
		}
		h.fail(w, r, err)
		return
	}
	ok, err := auth.CheckPassword(user.Password, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, invalid)
		return
	}
	h.issue(w, r, http.StatusOK, "Logged in successfully", user)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, "User retrieved successfully", map[string]any{
		"user": viewUser(currentUser(r)),
	})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Email != nil {
		lower := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &lower
	}
	user, err := h.Store.UpdateUser(r.Context(), currentUser(r).ID, store.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Profile updated successfully", map[string]any{
		"user": viewUser(user),
	})
}
