package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

// ErrNoPermission is returned by a Positioner that is not allowed (or
// not configured) to report the device position.
var ErrNoPermission = errors.New("location permission not granted")

// Positioner yields one device position fix per resolution pass.
type Positioner interface {
	// RequestPermission asks for location access. ErrNoPermission on
	// denial.
	RequestPermission(ctx context.Context) error
	// CurrentPosition returns a single fix at balanced accuracy.
	CurrentPosition(ctx context.Context) (model.GeoPoint, error)
}

// StaticPositioner reports coordinates fixed at deploy time, the usual
// setup for signage devices mounted in one building. An unconfigured
// positioner behaves as a permission denial.
type StaticPositioner struct {
	Point      model.GeoPoint
	Configured bool
}

func (s StaticPositioner) RequestPermission(ctx context.Context) error {
	if !s.Configured {
		return ErrNoPermission
	}
	return nil
}

func (s StaticPositioner) CurrentPosition(ctx context.Context) (model.GeoPoint, error) {
	if !s.Configured {
		return model.GeoPoint{}, ErrNoPermission
	}
	return s.Point, nil
}

// IPPositioner estimates the device position from its public IP via
// the ip-api.com lookup service. Coarse, but good enough to land in
// the right kabupaten/kota.
type IPPositioner struct {
	BaseURL string
	Client  *http.Client
}

func (p *IPPositioner) RequestPermission(ctx context.Context) error {
	// Geo-IP needs no user consent.
	return nil
}

func (p *IPPositioner) CurrentPosition(ctx context.Context) (model.GeoPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/json", nil)
	if err != nil {
		return model.GeoPoint{}, err
	}
	resp, err := p.client().Do(req)
	if err != nil {
		return model.GeoPoint{}, fmt.Errorf("ip lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.GeoPoint{}, fmt.Errorf("ip lookup: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.GeoPoint{}, fmt.Errorf("ip lookup: %w", err)
	}
	if body.Status != "success" {
		return model.GeoPoint{}, fmt.Errorf("ip lookup failed: %s", body.Message)
	}
	return model.GeoPoint{Latitude: body.Lat, Longitude: body.Lon}, nil
}

func (p *IPPositioner) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}
