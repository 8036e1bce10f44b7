package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/voltpoint/charge-station-api/internal/payload"
	"github.com/voltpoint/charge-station-api/internal/usecase"
	"github.com/voltpoint/charge-station-api/shared/validation"
)

// PasswordResetHandler serves the forgot/reset password endpoints.
type PasswordResetHandler struct {
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validation.Validator
	logger               *zerolog.Logger
}

func NewPasswordResetHandler(
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

func (h *PasswordResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := h.validator.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailNotFound):
			respondError(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error().Err(err).Msg("failed to request password reset")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "password reset email sent"})
}

func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	resetToken := chi.URLParam(r, "resettoken")

	var req payload.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := h.validator.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	if err := h.passwordResetUsecase.ResetPassword(r.Context(), resetToken, req.Password); err != nil {
		switch {
		case errors.Is(err, usecase.ErrResetTokenInvalid):
			respondError(w, http.StatusBadRequest, "password reset token is invalid or has expired")
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "password reset successful"})
}
