package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sahabat-Khairat/sholat/internal/http/api"
	"github.com/Sahabat-Khairat/sholat/internal/http/api/prayer/packets"
	"github.com/Sahabat-Khairat/sholat/internal/model"
	"github.com/Sahabat-Khairat/sholat/internal/resolver"
	"github.com/Sahabat-Khairat/sholat/internal/session"
)

type PrayerController struct {
	session *session.Controller
}

func NewPrayerController(s *session.Controller) *PrayerController {
	return &PrayerController{session: s}
}

// SessionModule exposes the live prayer session: state snapshot,
// today's full schedule, and the forced-refresh action.
func SessionModule(s *session.Controller) api.Module {
	ctl := NewPrayerController(s)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/session", ctl.getSession)
		c.GET("/schedule/today", ctl.getTodaySchedule)
		c.POST("/refresh", ctl.refresh)
	})
}

func (p *PrayerController) getSession(ctx *gin.Context) (any, *api.Error) {
	return sessionResponse(p.session.Snapshot()), nil
}

func (p *PrayerController) getTodaySchedule(ctx *gin.Context) (any, *api.Error) {
	snap := p.session.Snapshot()
	if snap.TodaySchedule == nil {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "jadwal hari ini belum tersedia"}
	}
	return scheduleResponse(snap.TodaySchedule), nil
}

// refresh forces a full re-resolution, bypassing the location cache. A
// failure leaves the persisted location untouched.
func (p *PrayerController) refresh(ctx *gin.Context) (any, *api.Error) {
	if err := p.session.Refresh(ctx.Request.Context()); err != nil {
		log.Error().Err(err).Msg("forced refresh failed")
		return nil, &api.Error{Code: statusFor(err), Message: resolver.HumanMessage(err)}
	}
	return sessionResponse(p.session.Snapshot()), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, resolver.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, resolver.ErrUnsupportedRegion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, resolver.ErrRegionNotFound):
		return http.StatusNotFound
	case errors.Is(err, resolver.ErrScheduleFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func sessionResponse(state model.SessionState) packets.SessionResponse {
	resp := packets.SessionResponse{
		LocationLabel: state.LocationLabel,
		Province:      state.Province,
		City:          state.City,
		Loading:       state.Loading,
		Error:         state.Error,
	}
	if state.TodaySchedule != nil {
		resp.TodaySchedule = scheduleResponse(state.TodaySchedule)
	}
	if state.NextPrayer != nil {
		resp.NextPrayer = &packets.NextPrayerResponse{
			Name:             state.NextPrayer.Name,
			Time:             state.NextPrayer.Time,
			SecondsRemaining: state.NextPrayer.SecondsRemaining,
			Label:            state.NextPrayer.Label,
		}
	}
	return resp
}

func scheduleResponse(day *model.DailySchedule) *packets.ScheduleResponse {
	return &packets.ScheduleResponse{
		Tanggal:        day.Tanggal,
		TanggalLengkap: day.TanggalLengkap,
		Hari:           day.Hari,
		Imsak:          day.Imsak,
		Subuh:          day.Subuh,
		Terbit:         day.Terbit,
		Dhuha:          day.Dhuha,
		Dzuhur:         day.Dzuhur,
		Ashar:          day.Ashar,
		Maghrib:        day.Maghrib,
		Isya:           day.Isya,
	}
}
