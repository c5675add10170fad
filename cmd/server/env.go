package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Environment struct {
	ServerAddress string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	DatabaseURL   string

	MQTTBrokerURL string
	MQTTTopic     string

	DeviceLatitude  float64
	DeviceLongitude float64
	HasCoordinates  bool

	EquranBaseURL       string
	NominatimBaseURL    string
	BigDataCloudBaseURL string
	IPAPIBaseURL        string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		ServerAddress: getenv("SERVER_ADDRESS", ":8080"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		MQTTTopic:     getenv("MQTT_TOPIC", "sholat/next"),

		EquranBaseURL:       getenv("EQURAN_BASE_URL", "https://equran.id/api/v2"),
		NominatimBaseURL:    getenv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		BigDataCloudBaseURL: getenv("BIGDATACLOUD_BASE_URL", "https://api.bigdatacloud.net"),
		IPAPIBaseURL:        getenv("IPAPI_BASE_URL", "http://ip-api.com"),
	}

	latRaw := os.Getenv("DEVICE_LATITUDE")
	lonRaw := os.Getenv("DEVICE_LONGITUDE")
	if latRaw != "" && lonRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil || lonErr != nil {
			log.Fatal().Msg("DEVICE_LATITUDE / DEVICE_LONGITUDE must be decimal degrees")
		}
		env.DeviceLatitude = lat
		env.DeviceLongitude = lon
		env.HasCoordinates = true
	}

	if env.RedisAddress == "" && env.DatabaseURL == "" {
		log.Fatal().Msg("either REDIS_ADDRESS or DATABASE_URL is required for the location cache")
	}

	return env
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
