package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/voltpoint/charge-station-api/internal/payload"
	"github.com/voltpoint/charge-station-api/internal/usecase"
	"github.com/voltpoint/charge-station-api/shared/validation"
)

// AuthHandler serves the account endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := h.validator.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			respondError(w, http.StatusBadRequest, "email already exists")
		default:
			h.logger.Error().Err(err).Msg("failed to register user")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusCreated, payload.TokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := h.validator.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.logger.Error().Err(err).Msg("failed to log in user")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.TokenResponse{Token: token})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			// Token outlived the account.
			respondError(w, http.StatusUnauthorized, "user no longer exists")
		default:
			h.logger.Error().Err(err).Msg("failed to get current user")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req payload.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := h.validator.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	if req.Name == nil && req.Email == nil {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	user, err := h.authUsecase.UpdateProfile(r.Context(), userID, usecase.UpdateProfileParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusUnauthorized, "user no longer exists")
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			respondError(w, http.StatusBadRequest, "email already exists")
		default:
			h.logger.Error().Err(err).Msg("failed to update profile")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.authUsecase.DeleteAccount(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusUnauthorized, "user no longer exists")
		default:
			h.logger.Error().Err(err).Msg("failed to delete account")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "account deleted"})
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req payload.UpdatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := h.validator.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	err := h.authUsecase.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "current password is incorrect")
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusUnauthorized, "user no longer exists")
		default:
			h.logger.Error().Err(err).Msg("failed to update password")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "password updated"})
}
