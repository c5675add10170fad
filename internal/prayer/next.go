package prayer

import (
	"strconv"
	"strings"
	"time"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

// Next returns the first anchor of today strictly after now, or rolls
// over to tomorrow's first anchor when every anchor has passed.
// tomorrow may be nil: near month-end the fetched payload does not
// cover the next day, and today's time is reused as an approximation.
// TODO: fetch the adjacent month instead of reusing today's Subuh time
// when the rollover crosses a month boundary.
func Next(now time.Time, today, tomorrow *model.DailySchedule) *model.NextPrayer {
	if today == nil {
		return nil
	}

	for _, name := range model.AnchorOrder {
		hhmm := today.AnchorTime(name)
		target := atClock(now, hhmm)
		if target.After(now) {
			return &model.NextPrayer{
				Name:             name,
				Time:             hhmm,
				SecondsRemaining: secondsUntil(now, target),
				Label:            Label(secondsUntil(now, target)),
			}
		}
	}

	// All of today's anchors have passed; the next one is tomorrow's
	// first anchor.
	first := model.AnchorOrder[0]
	hhmm := today.AnchorTime(first)
	if tomorrow != nil {
		if t := tomorrow.AnchorTime(first); t != "" {
			hhmm = t
		}
	}
	nextDay := now.AddDate(0, 0, 1)
	target := atClock(nextDay, hhmm)
	secs := secondsUntil(now, target)
	return &model.NextPrayer{
		Name:             first,
		Time:             hhmm,
		SecondsRemaining: secs,
		Label:            Label(secs),
	}
}

// atClock combines a date with an "HH:MM" string in the date's
// location. Malformed fields parse as zero, matching the provider's
// lenient consumers.
func atClock(date time.Time, hhmm string) time.Time {
	hour, minute := 0, 0
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) > 0 {
		hour, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	}
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// secondsUntil is ceil(target-now in seconds), floored at 1 so an
// imminent anchor never shows a zero countdown.
func secondsUntil(now, target time.Time) int {
	diff := target.Sub(now)
	secs := int((diff + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
