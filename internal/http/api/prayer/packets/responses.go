package packets

type NextPrayerResponse struct {
	Name             string `json:"name"`
	Time             string `json:"time"`
	SecondsRemaining int    `json:"seconds_remaining"`
	Label            string `json:"label"`
}

type ScheduleResponse struct {
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

type SessionResponse struct {
	LocationLabel string              `json:"location_label"`
	Province      string              `json:"province"`
	City          string              `json:"city"`
	TodaySchedule *ScheduleResponse   `json:"today_schedule"`
	NextPrayer    *NextPrayerResponse `json:"next_prayer"`
	Loading       bool                `json:"loading"`
	Error         string              `json:"error,omitempty"`
}
