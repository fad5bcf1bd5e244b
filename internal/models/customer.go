package models

// GeoPoint is a WGS84 coordinate pair in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CustomerLocation is a point-in-time copy of a customer record as supplied
// by the external customer store. The engine only reads it and never mutates
// it; ownership stays with the caller.
//
// AreaName, Category and NextDueDate are optional. A customer with no due
// date (or an invalid coordinate) is excluded by the eligibility filter and
// never reaches the clustering stage.
type CustomerLocation struct {
	ID          string   `json:"id"`
	Location    GeoPoint `json:"location"`
	DisplayName string   `json:"displayName"`
	AreaName    string   `json:"areaName,omitempty"`
	Category    string   `json:"category,omitempty"`
	NextDueDate *DueDate `json:"nextDueDate,omitempty"`
}
