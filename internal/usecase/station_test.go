package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/voltpoint/charge-station-api/internal/model"
	"github.com/voltpoint/charge-station-api/internal/repository"
	"github.com/voltpoint/charge-station-api/internal/usecase"
)

func newStationFixture() usecase.StationUsecase {
	return usecase.NewStationUsecase(repository.NewStationMemoryRepository())
}

func stationParams(name string) usecase.CreateStationParams {
	return usecase.CreateStationParams{
		Name:          name,
		Location:      model.Location{Latitude: 52.52, Longitude: 13.405},
		PowerOutput:   50,
		ConnectorType: "CCS",
	}
}

func TestCreateStation_DefaultsToActive(t *testing.T) {
	t.Parallel()

	stationUsecase := newStationFixture()
	owner := bson.NewObjectID()

	station, err := stationUsecase.CreateStation(context.Background(), owner.Hex(), stationParams("Downtown Charger"))
	require.NoError(t, err)
	require.Equal(t, model.StationStatusActive, station.Status)
	require.Equal(t, owner, station.CreatedBy)
	require.False(t, station.ID.IsZero())
}

func TestListStations_NewestFirst(t *testing.T) {
	t.Parallel()

	stationUsecase := newStationFixture()
	owner := bson.NewObjectID().Hex()
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := stationUsecase.CreateStation(ctx, owner, stationParams(name))
		require.NoError(t, err)
	}

	stations, err := stationUsecase.ListStations(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 3)
	require.Equal(t, "Third", stations[0].Name)
	require.Equal(t, "Second", stations[1].Name)
	require.Equal(t, "First", stations[2].Name)
}

func TestGetStation_MalformedID(t *testing.T) {
	t.Parallel()

	stationUsecase := newStationFixture()

	_, err := stationUsecase.GetStation(context.Background(), "not-an-object-id")
	require.ErrorIs(t, err, usecase.ErrStationNotFound)
}

func TestUpdateStation_OwnershipGuard(t *testing.T) {
	t.Parallel()

	stationUsecase := newStationFixture()
	ctx := context.Background()

	owner := bson.NewObjectID().Hex()
	other := bson.NewObjectID().Hex()

	station, err := stationUsecase.CreateStation(ctx, owner, stationParams("Downtown Charger"))
	require.NoError(t, err)

	newStatus := model.StationStatusInactive
	_, err = stationUsecase.UpdateStation(ctx, other, station.ID.Hex(), repository.UpdateStationParams{
		Status: &newStatus,
	})
	require.ErrorIs(t, err, usecase.ErrNotStationOwner)

	updated, err := stationUsecase.UpdateStation(ctx, owner, station.ID.Hex(), repository.UpdateStationParams{
		Status: &newStatus,
	})
	require.NoError(t, err)
	require.Equal(t, model.StationStatusInactive, updated.Status)
	// Untouched fields survive a partial update.
	require.Equal(t, "Downtown Charger", updated.Name)

	stored, err := stationUsecase.GetStation(ctx, station.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, model.StationStatusInactive, stored.Status)
}

func TestUpdateStation_NotFound(t *testing.T) {
	t.Parallel()

	stationUsecase := newStationFixture()

	name := "Renamed"
	_, err := stationUsecase.UpdateStation(
		context.Background(),
		bson.NewObjectID().Hex(),
		bson.NewObjectID().Hex(),
		repository.UpdateStationParams{Name: &name},
	)
	require.ErrorIs(t, err, usecase.ErrStationNotFound)
}

func TestDeleteStation_OwnershipGuard(t *testing.T) {
	t.Parallel()

	stationUsecase := newStationFixture()
	ctx := context.Background()

	owner := bson.NewObjectID().Hex()
	other := bson.NewObjectID().Hex()

	station, err := stationUsecase.CreateStation(ctx, owner, stationParams("Downtown Charger"))
	require.NoError(t, err)

	err = stationUsecase.DeleteStation(ctx, other, station.ID.Hex())
	require.ErrorIs(t, err, usecase.ErrNotStationOwner)

	err = stationUsecase.DeleteStation(ctx, owner, station.ID.Hex())
	require.NoError(t, err)

	_, err = stationUsecase.GetStation(ctx, station.ID.Hex())
	require.ErrorIs(t, err, usecase.ErrStationNotFound)
}
