package model

// SessionState is the aggregate snapshot exposed to the rest of the
// application. TodaySchedule and NextPrayer are nil while loading or
// after an error.
type SessionState struct {
	LocationLabel string         `json:"location_label"`
	Province      string         `json:"province"`
	City          string         `json:"city"`
	TodaySchedule *DailySchedule `json:"today_schedule"`
	NextPrayer    *NextPrayer    `json:"next_prayer"`
	Loading       bool           `json:"loading"`
	Error         string         `json:"error,omitempty"`
}
