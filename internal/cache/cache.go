// Package cache persists the resolved location across restarts. One
// global record, last write wins; the resolver writes it only after a
// fully successful pass.
package cache

import (
	"context"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

// Key under which the single resolved location is stored.
const Key = "sholat:resolved_location"

// Store is the persistent key-value cache. Get returns (nil, nil) when
// no location has been cached yet.
type Store interface {
	Get(ctx context.Context) (*model.ResolvedLocation, error)
	Set(ctx context.Context, loc model.ResolvedLocation) error
}
