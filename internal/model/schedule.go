package model

// The five daily prayer anchors, in the order they occur.
const (
	AnchorSubuh   = "Subuh"
	AnchorDzuhur  = "Dzuhur"
	AnchorAshar   = "Ashar"
	AnchorMaghrib = "Maghrib"
	AnchorIsya    = "Isya"
)

// AnchorOrder is the fixed daily evaluation order.
var AnchorOrder = [5]string{AnchorSubuh, AnchorDzuhur, AnchorAshar, AnchorMaghrib, AnchorIsya}

// DailySchedule is one calendar day of prayer times, verbatim from the
// provider. Times are "HH:MM" strings.
type DailySchedule struct {
	Tanggal        int    `json:"tanggal"`
	TanggalLengkap string `json:"tanggal_lengkap"`
	Hari           string `json:"hari"`
	Imsak          string `json:"imsak"`
	Subuh          string `json:"subuh"`
	Terbit         string `json:"terbit"`
	Dhuha          string `json:"dhuha"`
	Dzuhur         string `json:"dzuhur"`
	Ashar          string `json:"ashar"`
	Maghrib        string `json:"maghrib"`
	Isya           string `json:"isya"`
}

// AnchorTime returns the time string for one of the five anchors, or
// "" for an unknown name.
func (d DailySchedule) AnchorTime(name string) string {
	switch name {
	case AnchorSubuh:
		return d.Subuh
	case AnchorDzuhur:
		return d.Dzuhur
	case AnchorAshar:
		return d.Ashar
	case AnchorMaghrib:
		return d.Maghrib
	case AnchorIsya:
		return d.Isya
	}
	return ""
}

// MonthlySchedule is one calendar month of daily schedules for a
// resolved location, in provider order.
type MonthlySchedule []DailySchedule

// NextPrayer is the derived countdown target. Recomputed every tick,
// never persisted.
type NextPrayer struct {
	Name             string `json:"name"`
	Time             string `json:"time"`
	SecondsRemaining int    `json:"seconds_remaining"`
	Label            string `json:"label"`
}
