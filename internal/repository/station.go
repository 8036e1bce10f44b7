package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/voltpoint/charge-station-api/internal/model"
)

// StationRepository defines the interface for charging station database operations.
type StationRepository interface {
	CreateStation(ctx context.Context, station *model.Station) (*model.Station, error)
	GetStation(ctx context.Context, id string) (*model.Station, error)

	// ListStations returns all stations, newest first.
	ListStations(ctx context.Context) ([]*model.Station, error)

	UpdateStation(ctx context.Context, id string, params UpdateStationParams) (*model.Station, error)
	DeleteStation(ctx context.Context, id string) (*model.Station, error)

	// DeleteStationsByOwner removes every station created by the given user.
	DeleteStationsByOwner(ctx context.Context, ownerID bson.ObjectID) (int64, error)
}

// UpdateStationParams defines the optional parameters for updating a station.
// Only the fields that are not nil will be updated.
type UpdateStationParams struct {
	Name          *string
	Location      *model.Location
	Status        *string
	PowerOutput   *float64
	ConnectorType *string
}

const stationCollection = "stations"

type stationMongoRepository struct {
	db *mongo.Database
}

func NewStationMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) StationRepository {
	collection := db.Collection(stationCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_by", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create station indexes")
	}

	return &stationMongoRepository{db: db}
}

func (r *stationMongoRepository) CreateStation(ctx context.Context, station *model.Station) (*model.Station, error) {
	now := time.Now()
	station.CreatedAt = now
	station.UpdatedAt = now

	result, err := r.db.Collection(stationCollection).InsertOne(ctx, station)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		station.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return station, nil
}

func (r *stationMongoRepository) GetStation(ctx context.Context, id string) (*model.Station, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// An id that does not decode cannot match any document.
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(stationCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var station model.Station
	if err := result.Decode(&station); err != nil {
		return nil, err
	}

	return &station, nil
}

func (r *stationMongoRepository) ListStations(ctx context.Context) ([]*model.Station, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(stationCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stations []*model.Station
	for cursor.Next(ctx) {
		var station model.Station
		if err := cursor.Decode(&station); err != nil {
			return nil, err
		}
		stations = append(stations, &station)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

func (r *stationMongoRepository) UpdateStation(
	ctx context.Context,
	id string,
	params UpdateStationParams,
) (*model.Station, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	// Build update query
	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = params.Name
	}
	if params.Location != nil {
		updateMap["location"] = params.Location
	}
	if params.Status != nil {
		updateMap["status"] = params.Status
	}
	if params.PowerOutput != nil {
		updateMap["power_output"] = params.PowerOutput
	}
	if params.ConnectorType != nil {
		updateMap["connector_type"] = params.ConnectorType
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(stationCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var station model.Station
	if err := result.Decode(&station); err != nil {
		return nil, err
	}

	return &station, nil
}

func (r *stationMongoRepository) DeleteStation(ctx context.Context, id string) (*model.Station, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(stationCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var station model.Station
	if err := result.Decode(&station); err != nil {
		return nil, err
	}

	return &station, nil
}

func (r *stationMongoRepository) DeleteStationsByOwner(ctx context.Context, ownerID bson.ObjectID) (int64, error) {
	result, err := r.db.Collection(stationCollection).DeleteMany(ctx, bson.M{"created_by": ownerID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
