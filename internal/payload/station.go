package payload

// Location uses pointer coordinates so a present-but-zero coordinate is
// distinguishable from a missing one.
type Location struct {
	Latitude  *float64 `json:"latitude"  validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

type CreateStationRequest struct {
	Name          string    `json:"name"          validate:"required"`
	Location      *Location `json:"location"      validate:"required"`
	Status        string    `json:"status"        validate:"omitempty,oneof=Active Inactive"`
	PowerOutput   *float64  `json:"powerOutput"   validate:"required,gt=0"`
	ConnectorType string    `json:"connectorType" validate:"required"`
}

type UpdateStationRequest struct {
	Name          *string   `json:"name"          validate:"omitempty,min=1"`
	Location      *Location `json:"location"`
	Status        *string   `json:"status"        validate:"omitempty,oneof=Active Inactive"`
	PowerOutput   *float64  `json:"powerOutput"   validate:"omitempty,gt=0"`
	ConnectorType *string   `json:"connectorType" validate:"omitempty,min=1"`
}
