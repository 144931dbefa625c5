package configs

import (
	"os"

	"github.com/joho/godotenv"
)

// Load the .env file (if any) before the Envs snapshot below is taken.
var _ = godotenv.Load()

var Envs = struct {
	PORT            string
	FRONTEND_ORIGIN string
	COUNTRIES_PATH  string
	GIN_MODE        string
}{
	PORT:            getenv("PORT", "8080"),
	FRONTEND_ORIGIN: os.Getenv("FRONTEND_ORIGIN"),
	COUNTRIES_PATH:  getenv("COUNTRIES_PATH", "data/countries.geo.json"),
	GIN_MODE:        os.Getenv("GIN_MODE"),
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
