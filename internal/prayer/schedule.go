// Package prayer turns a month of provider schedules into a live
// next-prayer countdown.
package prayer

import (
	"context"
	"time"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

const dateKeyLayout = "2006-01-02"

// ScheduleSource is the provider call the fetcher depends on.
type ScheduleSource interface {
	MonthlySchedule(ctx context.Context, province, city string, month, year int) (model.MonthlySchedule, error)
}

// Fetcher retrieves the full month covering a given instant for a
// resolved location. One call per resolution pass; the tick loop never
// goes back to the network.
type Fetcher struct {
	Source ScheduleSource
}

func (f *Fetcher) FetchMonth(ctx context.Context, loc model.ResolvedLocation, at time.Time) (model.MonthlySchedule, error) {
	return f.Source.MonthlySchedule(ctx, loc.Province, loc.City, int(at.Month()), at.Year())
}

// SelectDay picks the schedule for a calendar date out of a monthly
// payload: exact date-key match first, then day-of-month, which covers
// provider date-format drift. Nil when the date is not in the payload.
func SelectDay(monthly model.MonthlySchedule, date time.Time) *model.DailySchedule {
	key := date.Format(dateKeyLayout)
	for i := range monthly {
		if monthly[i].TanggalLengkap == key {
			return &monthly[i]
		}
	}
	for i := range monthly {
		if monthly[i].Tanggal == date.Day() {
			return &monthly[i]
		}
	}
	return nil
}
