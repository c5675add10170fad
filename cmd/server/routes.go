package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Sahabat-Khairat/sholat/internal/http/api"
	prayerapi "github.com/Sahabat-Khairat/sholat/internal/http/api/prayer/endpoints"
	"github.com/Sahabat-Khairat/sholat/internal/session"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, ctl *session.Controller) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/prayer",
	},
		prayerapi.SessionModule(ctl),
	)
}
