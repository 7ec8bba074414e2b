package settings

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once
var singleSettingsInstace *settings

type settings struct {
	MONGO_CONNECTION            string
	MONGO_DB                    string
	MONGO_SECTIONS_COLLECTION   string
	MONGO_TIMESERIES_COLLECTION string
	MONGO_SUBJECTS_COLLECTION   string
	MONGO_DATA_COLLECTION       string
	REDIS_URL                   string
	JWT_SECRET_KEY              string
	CLIENT_URL                  string
	NODE_ENV                    string
	PORT                        string
	RATE_LIMIT                  uint
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newSettings() *settings {
	rateLimit, err := strconv.ParseUint(getEnv("RATE_LIMIT", "7"), 10, 32)
	if err != nil || rateLimit == 0 {
		rateLimit = 7
	}
	return &settings{
		MONGO_CONNECTION:            os.Getenv("MONGO_CONNECTION"),
		MONGO_DB:                    getEnv("MONGO_DB", "courses"),
		MONGO_SECTIONS_COLLECTION:   getEnv("MONGO_SECTIONS_COLLECTION", "sections"),
		MONGO_TIMESERIES_COLLECTION: getEnv("MONGO_TIMESERIES_COLLECTION", "sectionsTS"),
		MONGO_SUBJECTS_COLLECTION:   getEnv("MONGO_SUBJECTS_COLLECTION", "subjects"),
		MONGO_DATA_COLLECTION:       getEnv("MONGO_DATA_COLLECTION", "data"),
		REDIS_URL:                   os.Getenv("REDIS_URL"),
		JWT_SECRET_KEY:              os.Getenv("JWT_SECRET_KEY"),
		CLIENT_URL:                  os.Getenv("CLIENT_URL"),
		NODE_ENV:                    os.Getenv("NODE_ENV"),
		PORT:                        getEnv("PORT", "8080"),
		RATE_LIMIT:                  uint(rateLimit),
	}
}

func loadEnvFile() {
	if os.Getenv("NODE_ENV") == "prod" {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

// Validate reports the required keys that are missing.
func (s *settings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.MONGO_CONNECTION) == "" {
		missing = append(missing, "MONGO_CONNECTION")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment: " + strings.Join(missing, ", "))
	}
	return nil
}

func (s *settings) IsProd() bool {
	return s.NODE_ENV == "prod"
}

func GetSettings() *settings {
	once.Do(func() {
		loadEnvFile()
		singleSettingsInstace = newSettings()
	})
	return singleSettingsInstace
}
