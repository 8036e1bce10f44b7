package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/voltpoint/charge-station-api/internal/authz"
	"github.com/voltpoint/charge-station-api/internal/model"
	"github.com/voltpoint/charge-station-api/internal/repository"
)

// StationUsecase defines the interface for charging station use cases.
type StationUsecase interface {
	CreateStation(ctx context.Context, callerID string, params CreateStationParams) (*model.Station, error)
	ListStations(ctx context.Context) ([]*model.Station, error)
	GetStation(ctx context.Context, id string) (*model.Station, error)
	UpdateStation(ctx context.Context, callerID, id string, params repository.UpdateStationParams) (*model.Station, error)
	DeleteStation(ctx context.Context, callerID, id string) error
}

// CreateStationParams defines the parameters for creating a station.
type CreateStationParams struct {
	Name          string
	Location      model.Location
	Status        string
	PowerOutput   float64
	ConnectorType string
}

var (
	ErrStationNotFound = errors.New("charging station not found")
	ErrNotStationOwner = errors.New("caller does not own the charging station")
)

type stationUsecase struct {
	stationRepo repository.StationRepository
}

func NewStationUsecase(stationRepo repository.StationRepository) StationUsecase {
	return &stationUsecase{stationRepo: stationRepo}
}

func (u *stationUsecase) CreateStation(
	ctx context.Context,
	callerID string,
	params CreateStationParams,
) (*model.Station, error) {
	ownerID, err := bson.ObjectIDFromHex(callerID)
	if err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = model.StationStatusActive
	}

	return u.stationRepo.CreateStation(ctx, &model.Station{
		Name:          params.Name,
		Location:      params.Location,
		Status:        status,
		PowerOutput:   params.PowerOutput,
		ConnectorType: params.ConnectorType,
		CreatedBy:     ownerID,
	})
}

func (u *stationUsecase) ListStations(ctx context.Context) ([]*model.Station, error) {
	return u.stationRepo.ListStations(ctx)
}

func (u *stationUsecase) GetStation(ctx context.Context, id string) (*model.Station, error) {
	station, err := u.stationRepo.GetStation(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStationNotFound
		}

		return nil, err
	}

	return station, nil
}

func (u *stationUsecase) UpdateStation(
	ctx context.Context,
	callerID, id string,
	params repository.UpdateStationParams,
) (*model.Station, error) {
	if err := u.authorizeMutation(ctx, callerID, id); err != nil {
		return nil, err
	}

	station, err := u.stationRepo.UpdateStation(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStationNotFound
		}

		return nil, err
	}

	return station, nil
}

func (u *stationUsecase) DeleteStation(ctx context.Context, callerID, id string) error {
	if err := u.authorizeMutation(ctx, callerID, id); err != nil {
		return err
	}

	if _, err := u.stationRepo.DeleteStation(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrStationNotFound
		}

		return err
	}

	return nil
}

// authorizeMutation fetches the station and applies the ownership rule.
// Absence is reported before ownership so a non-owner learns nothing more
// than anyone with read access already could.
func (u *stationUsecase) authorizeMutation(ctx context.Context, callerID, id string) error {
	station, err := u.stationRepo.GetStation(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrStationNotFound
		}

		return err
	}

	callerOID, err := bson.ObjectIDFromHex(callerID)
	if err != nil {
		return err
	}

	if authz.AuthorizeOwner(station.CreatedBy, callerOID) != authz.Allowed {
		return ErrNotStationOwner
	}

	return nil
}
