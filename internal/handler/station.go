package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/voltpoint/charge-station-api/internal/model"
	"github.com/voltpoint/charge-station-api/internal/payload"
	"github.com/voltpoint/charge-station-api/internal/repository"
	"github.com/voltpoint/charge-station-api/internal/usecase"
	"github.com/voltpoint/charge-station-api/shared/validation"
)

// StationHandler serves the charging station endpoints. All of them sit behind
// the auth middleware; mutation additionally requires ownership.
type StationHandler struct {
	stationUsecase usecase.StationUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

func NewStationHandler(
	stationUsecase usecase.StationUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *StationHandler {
	return &StationHandler{
		stationUsecase: stationUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *StationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req payload.CreateStationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := h.validator.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	station, err := h.stationUsecase.CreateStation(r.Context(), userID, usecase.CreateStationParams{
		Name: req.Name,
		Location: model.Location{
			Latitude:  *req.Location.Latitude,
			Longitude: *req.Location.Longitude,
		},
		Status:        req.Status,
		PowerOutput:   *req.PowerOutput,
		ConnectorType: req.ConnectorType,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create station")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, station)
}

func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stationUsecase.ListStations(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list stations")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if stations == nil {
		stations = []*model.Station{}
	}

	respondJSON(w, http.StatusOK, stations)
}

func (h *StationHandler) Get(w http.ResponseWriter, r *http.Request) {
	station, err := h.stationUsecase.GetStation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStationNotFound):
			respondError(w, http.StatusNotFound, "charging station not found")
		default:
			h.logger.Error().Err(err).Msg("failed to get station")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, station)
}

func (h *StationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req payload.UpdateStationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := h.validator.Struct(req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	params := repository.UpdateStationParams{
		Name:          req.Name,
		Status:        req.Status,
		PowerOutput:   req.PowerOutput,
		ConnectorType: req.ConnectorType,
	}
	if req.Location != nil {
		params.Location = &model.Location{
			Latitude:  *req.Location.Latitude,
			Longitude: *req.Location.Longitude,
		}
	}

	station, err := h.stationUsecase.UpdateStation(r.Context(), userID, chi.URLParam(r, "id"), params)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStationNotFound):
			respondError(w, http.StatusNotFound, "charging station not found")
		case errors.Is(err, usecase.ErrNotStationOwner):
			respondError(w, http.StatusForbidden, "caller does not own this station")
		default:
			h.logger.Error().Err(err).Msg("failed to update station")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, station)
}

func (h *StationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.stationUsecase.DeleteStation(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		switch {
		case errors.Is(err, usecase.ErrStationNotFound):
			respondError(w, http.StatusNotFound, "charging station not found")
		case errors.Is(err, usecase.ErrNotStationOwner):
			respondError(w, http.StatusForbidden, "caller does not own this station")
		default:
			h.logger.Error().Err(err).Msg("failed to delete station")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "charging station removed"})
}
