package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Sahabat-Khairat/sholat/internal/cache"
	"github.com/Sahabat-Khairat/sholat/internal/equran"
	"github.com/Sahabat-Khairat/sholat/internal/geo"
	"github.com/Sahabat-Khairat/sholat/internal/model"
	"github.com/Sahabat-Khairat/sholat/internal/prayer"
	"github.com/Sahabat-Khairat/sholat/internal/resolver"
	"github.com/Sahabat-Khairat/sholat/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	env := LoadEnvironment()

	// location cache: redis when configured, otherwise postgres
	var store cache.Store
	if env.RedisAddress != "" {
		store = cache.NewRedisStore(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	} else {
		pg, err := cache.NewPostgresStore(env.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("cache init")
		}
		store = pg
	}

	// device position: fixed coordinates for mounted devices, geo-IP
	// fallback for everything else
	var positioner geo.Positioner
	if env.HasCoordinates {
		positioner = geo.StaticPositioner{
			Point:      model.GeoPoint{Latitude: env.DeviceLatitude, Longitude: env.DeviceLongitude},
			Configured: true,
		}
	} else {
		positioner = &geo.IPPositioner{BaseURL: env.IPAPIBaseURL}
	}

	collector := &geo.Collector{Sources: []geo.Geocoder{
		&geo.BigDataCloudGeocoder{BaseURL: env.BigDataCloudBaseURL},
		&geo.NominatimGeocoder{BaseURL: env.NominatimBaseURL},
	}}

	eq := equran.NewClient(env.EquranBaseURL)

	res := &resolver.Resolver{
		Positioner: positioner,
		Geocoders:  collector,
		Regions:    eq,
		Cache:      store,
	}

	var notifier session.Notifier
	if env.MQTTBrokerURL != "" {
		n, err := session.NewMQTTNotifier(env.MQTTBrokerURL, "sholat-server", env.MQTTTopic)
		if err != nil {
			log.Error().Err(err).Msg("MQTT disabled: broker unreachable")
		} else {
			notifier = n
		}
	}

	ctl := session.New(res, store, &prayer.Fetcher{Source: eq}, notifier)
	defer ctl.Close()

	// initial load happens in the background so the API is reachable
	// immediately; clients see loading=true until it completes
	go func() {
		if err := ctl.Start(context.Background()); err != nil {
			log.Error().Err(err).Msg("initial session load failed")
		}
	}()

	r := gin.Default()
	RegisterRoutes(r, ctl)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
