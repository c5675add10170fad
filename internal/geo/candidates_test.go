package geo

import (
	"reflect"
	"testing"
)

func TestAddressCandidatesDedupByNormalizedForm(t *testing.T) {
	c := NewAddressCandidates()
	c.AddProvince("Jawa Barat")
	c.AddProvince("Provinsi Jawa Barat") // same after normalization
	c.AddProvince("JAWA BARAT")
	c.AddProvince("Jawa Tengah")

	want := []string{"Jawa Barat", "Jawa Tengah"}
	if !reflect.DeepEqual(c.Provinces(), want) {
		t.Errorf("provinces = %v, want %v", c.Provinces(), want)
	}
}

func TestAddressCandidatesSkipsEmpty(t *testing.T) {
	c := NewAddressCandidates()
	c.AddCity("", "  ", "...", "Bandung")
	if got := c.Cities(); len(got) != 1 || got[0] != "Bandung" {
		t.Errorf("cities = %v, want [Bandung]", got)
	}
}

func TestAddressCandidatesPreservesInsertionOrder(t *testing.T) {
	c := NewAddressCandidates()
	c.AddCity("Kota Bandung")
	c.AddCity("Cimahi")
	c.AddCity("Bandung") // dup of first entry
	want := []string{"Kota Bandung", "Cimahi"}
	if !reflect.DeepEqual(c.Cities(), want) {
		t.Errorf("cities = %v, want %v", c.Cities(), want)
	}
}

func TestAddressCandidatesLabelFirstWins(t *testing.T) {
	c := NewAddressCandidates()
	c.SetLabel("")
	c.SetLabel("Bandung, Jawa Barat")
	c.SetLabel("some later label")
	if c.Label() != "Bandung, Jawa Barat" {
		t.Errorf("label = %q", c.Label())
	}
}

func TestAddressCandidatesCountryCodesAndNames(t *testing.T) {
	c := NewAddressCandidates()
	c.AddCountry("ID", "id") // same normalized key
	c.AddCountry("Indonesia")
	if got := c.Countries(); len(got) != 2 {
		t.Errorf("countries = %v, want 2 entries", got)
	}
}
