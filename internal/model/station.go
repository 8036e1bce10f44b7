package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Station statuses.
const (
	StationStatusActive   = "Active"
	StationStatusInactive = "Inactive"
)

// Location is a geographic coordinate pair.
type Location struct {
	Latitude  float64 `bson:"latitude"  json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Station represents an EV charging station owned by the user who created it.
type Station struct {
	ID            bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	Name          string        `bson:"name"           json:"name"`
	Location      Location      `bson:"location"       json:"location"`
	Status        string        `bson:"status"         json:"status"`
	PowerOutput   float64       `bson:"power_output"   json:"powerOutput"`
	ConnectorType string        `bson:"connector_type" json:"connectorType"`
	CreatedBy     bson.ObjectID `bson:"created_by"     json:"createdBy"`
	CreatedAt     time.Time     `bson:"created_at"     json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at"     json:"updatedAt"`
}
