package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/voltpoint/charge-station-api/internal/model"
)

// In-memory repository implementations backing tests and local development.
// They mirror the Mongo repositories' error contract: mongo.ErrNoDocuments for
// absent documents and a duplicate-key write exception for email collisions.

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "duplicate key error"},
		},
	}
}

type userMemoryRepository struct {
	mu    sync.Mutex
	users map[bson.ObjectID]*model.User
}

// NewUserMemoryRepository creates an in-memory UserRepository.
func NewUserMemoryRepository() UserRepository {
	return &userMemoryRepository{users: make(map[bson.ObjectID]*model.User)}
}

func (r *userMemoryRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	now := time.Now()
	stored := *user
	stored.ID = bson.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *userMemoryRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (r *userMemoryRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *userMemoryRepository) GetUserByResetToken(_ context.Context, token string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ResetToken == token && user.ResetToken != "" && user.ResetTokenExpiresAt.After(time.Now()) {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *userMemoryRepository) UpdateUser(_ context.Context, id string, params UpdateUserParams) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Email != nil {
		for _, existing := range r.users {
			if existing.ID != objectID && existing.Email == *params.Email {
				return nil, duplicateKeyError()
			}
		}
		user.Email = *params.Email
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (r *userMemoryRepository) SetResetToken(_ context.Context, id, token string, expiresAt time.Time) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return mongo.ErrNoDocuments
	}

	user.ResetToken = token
	user.ResetTokenExpiresAt = expiresAt
	user.UpdatedAt = time.Now()

	return nil
}

func (r *userMemoryRepository) ResetPassword(_ context.Context, id, passwordHash string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetTokenExpiresAt = time.Time{}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (r *userMemoryRepository) DeleteUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.users, objectID)

	copied := *user
	return &copied, nil
}

type stationMemoryRepository struct {
	mu       sync.Mutex
	stations map[bson.ObjectID]*model.Station
	seq      int64
}

// NewStationMemoryRepository creates an in-memory StationRepository.
func NewStationMemoryRepository() StationRepository {
	return &stationMemoryRepository{stations: make(map[bson.ObjectID]*model.Station)}
}

func (r *stationMemoryRepository) CreateStation(_ context.Context, station *model.Station) (*model.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Monotonic creation times keep list ordering stable even when two
	// inserts land within the clock's resolution.
	r.seq++
	now := time.Now().Add(time.Duration(r.seq) * time.Microsecond)

	stored := *station
	stored.ID = bson.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.stations[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *stationMemoryRepository) GetStation(_ context.Context, id string) (*model.Station, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *station
	return &copied, nil
}

func (r *stationMemoryRepository) ListStations(_ context.Context) ([]*model.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stations := make([]*model.Station, 0, len(r.stations))
	for _, station := range r.stations {
		copied := *station
		stations = append(stations, &copied)
	}

	sort.Slice(stations, func(i, j int) bool {
		return stations[i].CreatedAt.After(stations[j].CreatedAt)
	})

	if len(stations) == 0 {
		return nil, nil
	}

	return stations, nil
}

func (r *stationMemoryRepository) UpdateStation(
	_ context.Context,
	id string,
	params UpdateStationParams,
) (*model.Station, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		station.Name = *params.Name
	}
	if params.Location != nil {
		station.Location = *params.Location
	}
	if params.Status != nil {
		station.Status = *params.Status
	}
	if params.PowerOutput != nil {
		station.PowerOutput = *params.PowerOutput
	}
	if params.ConnectorType != nil {
		station.ConnectorType = *params.ConnectorType
	}
	station.UpdatedAt = time.Now()

	copied := *station
	return &copied, nil
}

func (r *stationMemoryRepository) DeleteStation(_ context.Context, id string) (*model.Station, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.stations, objectID)

	copied := *station
	return &copied, nil
}

func (r *stationMemoryRepository) DeleteStationsByOwner(_ context.Context, ownerID bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, station := range r.stations {
		if station.CreatedBy == ownerID {
			delete(r.stations, id)
			deleted++
		}
	}

	return deleted, nil
}
