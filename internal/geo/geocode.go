// Package geo covers device positioning and reverse geocoding. Two
// independent sources feed the candidate set: a structured geocoder and
// a free-text one. Any single source may omit or mis-tier
// administrative fields, so their outputs are merged rather than
// preferred.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

// Geocoder turns a position into raw region strings, appended onto the
// shared candidate set.
type Geocoder interface {
	Reverse(ctx context.Context, point model.GeoPoint, out *AddressCandidates) error
}

// Collector merges every configured geocoder into one candidate set.
// A single failing source degrades; all sources failing is an error.
type Collector struct {
	Sources []Geocoder
}

func (c *Collector) Collect(ctx context.Context, point model.GeoPoint) (*AddressCandidates, error) {
	out := NewAddressCandidates()
	succeeded := 0
	for _, src := range c.Sources {
		if err := src.Reverse(ctx, point, out); err != nil {
			log.Warn().Err(err).Msg("reverse geocoding source failed")
			continue
		}
		succeeded++
	}
	if succeeded == 0 {
		return nil, errors.New("all reverse geocoding sources failed")
	}
	return out, nil
}

// BigDataCloudGeocoder is the structured source. Its reverse-geocode
// endpoint returns tiered administrative fields; absent fields are
// normal.
type BigDataCloudGeocoder struct {
	BaseURL string
	Client  *http.Client
}

func (g *BigDataCloudGeocoder) Reverse(ctx context.Context, point model.GeoPoint, out *AddressCandidates) error {
	endpoint := fmt.Sprintf(
		"%s/data/reverse-geocode-client?latitude=%f&longitude=%f&localityLanguage=id",
		g.BaseURL, point.Latitude, point.Longitude,
	)
	var body struct {
		CountryCode          string `json:"countryCode"`
		CountryName          string `json:"countryName"`
		PrincipalSubdivision string `json:"principalSubdivision"`
		City                 string `json:"city"`
		Locality             string `json:"locality"`
	}
	if err := getJSON(ctx, httpClient(g.Client), endpoint, &body); err != nil {
		return fmt.Errorf("bigdatacloud: %w", err)
	}

	out.AddProvince(body.PrincipalSubdivision)
	out.AddCity(body.City, body.Locality)
	out.AddCountry(body.CountryCode, body.CountryName)
	if body.City != "" && body.PrincipalSubdivision != "" {
		out.SetLabel(body.City + ", " + body.PrincipalSubdivision)
	}
	return nil
}

// NominatimGeocoder is the free-text source. Its address object uses
// loosely-typed keys that vary by place, so every plausible tier is
// collected.
type NominatimGeocoder struct {
	BaseURL string
	Client  *http.Client
}

func (g *NominatimGeocoder) Reverse(ctx context.Context, point model.GeoPoint, out *AddressCandidates) error {
	endpoint := fmt.Sprintf(
		"%s/reverse?format=jsonv2&accept-language=id&lat=%f&lon=%f",
		g.BaseURL, point.Latitude, point.Longitude,
	)
	var body struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			State         string `json:"state"`
			Province      string `json:"province"`
			Region        string `json:"region"`
			StateDistrict string `json:"state_district"`
			City          string `json:"city"`
			County        string `json:"county"`
			Town          string `json:"town"`
			Municipality  string `json:"municipality"`
			CityDistrict  string `json:"city_district"`
			Country       string `json:"country"`
			CountryCode   string `json:"country_code"`
		} `json:"address"`
	}
	if err := getJSON(ctx, httpClient(g.Client), endpoint, &body); err != nil {
		return fmt.Errorf("nominatim: %w", err)
	}

	addr := body.Address
	out.AddProvince(addr.State, addr.Province, addr.Region, addr.StateDistrict)
	out.AddCity(addr.City, addr.County, addr.Town, addr.Municipality, addr.CityDistrict)
	out.AddCountry(addr.CountryCode, addr.Country)
	out.SetLabel(body.DisplayName)
	return nil
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}
