// Package resolver runs the resolution pipeline: device position →
// merged geocoding candidates → country check → canonical province →
// canonical city → cached ResolvedLocation. Strictly sequential; each
// step's output is the next step's input.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Sahabat-Khairat/sholat/internal/cache"
	"github.com/Sahabat-Khairat/sholat/internal/geo"
	"github.com/Sahabat-Khairat/sholat/internal/match"
	"github.com/Sahabat-Khairat/sholat/internal/model"
	"github.com/Sahabat-Khairat/sholat/internal/textnorm"
)

// Step names the pipeline stage a resolver is in, mostly for logging
// and error context.
type Step string

const (
	StepRequestingPermission Step = "requesting_permission"
	StepPositioning          Step = "positioning"
	StepGeocoding            Step = "geocoding"
	StepValidatingCountry    Step = "validating_country"
	StepMatchingProvince     Step = "matching_province"
	StepMatchingCity         Step = "matching_city"
	StepCaching              Step = "caching"
	StepReady                Step = "ready"
)

const (
	supportedCountryCode = "id"
	supportedCountryName = "indonesia"
)

// RegionSource provides the canonical region lists of the schedule
// provider.
type RegionSource interface {
	Provinces(ctx context.Context) ([]string, error)
	Cities(ctx context.Context, province string) ([]string, error)
}

// CandidateSource merges reverse-geocoding sources into one candidate
// set for a position.
type CandidateSource interface {
	Collect(ctx context.Context, point model.GeoPoint) (*geo.AddressCandidates, error)
}

type Resolver struct {
	Positioner geo.Positioner
	Geocoders  CandidateSource
	Regions    RegionSource
	Cache      cache.Store
}

// Resolve runs the full pipeline once. The cache write on success is
// the only durable side effect; any failure aborts before it, so a
// partial location is never persisted.
func (r *Resolver) Resolve(ctx context.Context) (*model.ResolvedLocation, error) {
	step := StepRequestingPermission
	if err := r.Positioner.RequestPermission(ctx); err != nil {
		return nil, fail(step, ErrPermissionDenied, err)
	}

	step = StepPositioning
	point, err := r.Positioner.CurrentPosition(ctx)
	if err != nil {
		if errors.Is(err, geo.ErrNoPermission) {
			return nil, fail(step, ErrPermissionDenied, err)
		}
		return nil, failPlain(step, err)
	}

	step = StepGeocoding
	candidates, err := r.Geocoders.Collect(ctx, point)
	if err != nil {
		return nil, failPlain(step, err)
	}

	step = StepValidatingCountry
	if !countrySupported(candidates) {
		return nil, fail(step, ErrUnsupportedRegion, fmt.Errorf("countries seen: %v", candidates.Countries()))
	}

	step = StepMatchingProvince
	provinces, err := r.Regions.Provinces(ctx)
	if err != nil {
		return nil, fail(step, ErrScheduleFetch, err)
	}
	province, ok := match.FindBest(candidates.Provinces(), provinces)
	if !ok {
		return nil, fail(step, ErrRegionNotFound, fmt.Errorf("no province candidate matched: %v", candidates.Provinces()))
	}

	step = StepMatchingCity
	cities, err := r.Regions.Cities(ctx, province)
	if err != nil {
		return nil, fail(step, ErrScheduleFetch, err)
	}
	city := r.matchCity(candidates, cities)
	if city == "" {
		return nil, fail(step, ErrRegionNotFound, fmt.Errorf("province %q has no cities", province))
	}

	loc := model.ResolvedLocation{
		Province:      province,
		City:          city,
		LocationLabel: city + ", " + province,
	}

	step = StepCaching
	if err := r.Cache.Set(ctx, loc); err != nil {
		// The resolution itself is good; a cache write failure only
		// costs the next cold start.
		log.Error().Err(err).Msg("failed to persist resolved location")
	}

	log.Info().
		Str("step", string(StepReady)).
		Str("province", loc.Province).
		Str("city", loc.City).
		Msg("location resolved")
	return &loc, nil
}

// matchCity tries collected city candidates, then the merged label as
// a single candidate, then degrades to the first canonical entry:
// province-level data is still usable even when the city is a guess.
func (r *Resolver) matchCity(candidates *geo.AddressCandidates, cities []string) string {
	if city, ok := match.FindBest(candidates.Cities(), cities); ok {
		return city
	}
	if label := candidates.Label(); label != "" {
		if city, ok := match.FindBest([]string{label}, cities); ok {
			return city
		}
	}
	if len(cities) > 0 {
		log.Warn().Msg("no city candidate matched, defaulting to first canonical entry")
		return cities[0]
	}
	return ""
}

// countrySupported accepts the position when any collected country
// signal normalizes to Indonesia's ISO code or name, or the merged
// label textually contains the country name.
func countrySupported(candidates *geo.AddressCandidates) bool {
	for _, c := range candidates.Countries() {
		n := textnorm.Normalize(c)
		if n == supportedCountryCode || n == supportedCountryName {
			return true
		}
	}
	return strings.Contains(textnorm.Normalize(candidates.Label()), supportedCountryName)
}

func fail(step Step, sentinel, cause error) error {
	log.Error().Err(cause).Str("step", string(step)).Msg("location resolution failed")
	return fmt.Errorf("%s: %w: %v", step, sentinel, cause)
}

// failPlain is for faults outside the taxonomy's named cases.
func failPlain(step Step, cause error) error {
	log.Error().Err(cause).Str("step", string(step)).Msg("location resolution failed")
	return fmt.Errorf("%s: %w", step, cause)
}
