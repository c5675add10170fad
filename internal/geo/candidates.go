package geo

import (
	"github.com/Sahabat-Khairat/sholat/internal/textnorm"
)

// AddressCandidates accumulates free-text region strings from every
// reverse-geocoding source of one resolution pass. Entries are
// deduplicated by their normalized form, first writer wins, insertion
// order preserved. Ephemeral: built, consumed, discarded.
type AddressCandidates struct {
	provinces []string
	cities    []string
	countries []string
	label     string

	seenProvince map[string]bool
	seenCity     map[string]bool
	seenCountry  map[string]bool
}

func NewAddressCandidates() *AddressCandidates {
	return &AddressCandidates{
		seenProvince: make(map[string]bool),
		seenCity:     make(map[string]bool),
		seenCountry:  make(map[string]bool),
	}
}

func (a *AddressCandidates) AddProvince(values ...string) {
	for _, v := range values {
		insert(&a.provinces, a.seenProvince, v)
	}
}

func (a *AddressCandidates) AddCity(values ...string) {
	for _, v := range values {
		insert(&a.cities, a.seenCity, v)
	}
}

// AddCountry accepts ISO codes and country names alike; validation
// normalizes both the same way.
func (a *AddressCandidates) AddCountry(values ...string) {
	for _, v := range values {
		insert(&a.countries, a.seenCountry, v)
	}
}

// SetLabel keeps the first non-empty human-readable label offered.
func (a *AddressCandidates) SetLabel(label string) {
	if a.label == "" && label != "" {
		a.label = label
	}
}

func (a *AddressCandidates) Provinces() []string { return a.provinces }
func (a *AddressCandidates) Cities() []string    { return a.cities }
func (a *AddressCandidates) Countries() []string { return a.countries }
func (a *AddressCandidates) Label() string       { return a.label }

func insert(list *[]string, seen map[string]bool, value string) {
	key := textnorm.Normalize(value)
	if key == "" || seen[key] {
		return
	}
	seen[key] = true
	*list = append(*list, value)
}
