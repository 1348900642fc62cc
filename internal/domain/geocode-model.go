package domain

// GeocodeResult is one address suggestion from the geocoding service.
// Coordinates come back as strings in the Nominatim payload.
type GeocodeResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
