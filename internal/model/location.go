package model

// GeoPoint is a single device position fix (WGS84). Produced once per
// resolution pass and never mutated afterwards.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResolvedLocation is the canonical region pair recognized by the
// schedule provider. Province and City always come from the provider's
// own region lists, never from a raw geocoder string. This is the only
// entity persisted across restarts.
type ResolvedLocation struct {
	Province      string `json:"province" db:"province"`
	City          string `json:"city" db:"city"`
	LocationLabel string `json:"location_label" db:"location_label"`
}
