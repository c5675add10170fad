package resolver

import "errors"

// Failure taxonomy for one resolution pass. Every pipeline error wraps
// exactly one of these sentinels so callers can map it to a response
// without string matching.
var (
	// ErrPermissionDenied: no device-location permission.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnsupportedRegion: the position is outside Indonesia. Fatal
	// for the session, never retried automatically.
	ErrUnsupportedRegion = errors.New("unsupported region")
	// ErrRegionNotFound: no candidate cleared the matching threshold
	// against the canonical lists.
	ErrRegionNotFound = errors.New("region not found")
	// ErrScheduleFetch: provider or network failure while loading
	// region lists or the monthly schedule.
	ErrScheduleFetch = errors.New("schedule fetch failed")
)

// HumanMessage maps a pipeline error onto the message shown in the
// app, in the application's language.
func HumanMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Izin lokasi belum diberikan."
	case errors.Is(err, ErrUnsupportedRegion):
		return "Lokasi berada di luar wilayah Indonesia."
	case errors.Is(err, ErrRegionNotFound):
		return "Provinsi tidak ditemukan dari lokasi."
	case errors.Is(err, ErrScheduleFetch):
		return "Gagal memuat jadwal sholat."
	default:
		return "Gagal memuat jadwal sholat."
	}
}
