package configs

import (
	"os"
	"strconv"
)

var Envs = struct {
	FRONTEND_ORIGIN         string
	GIN_MODE                string
	PORT                    string
	MIN_PLAYERS             int
	MAX_PLAYERS             int
	TURN_TIME_SECONDS       int
	TOTAL_GAME_TIME_SECONDS int
	FORMATION_GRACE_SECONDS int
}{
	FRONTEND_ORIGIN:         getenv("FRONTEND_ORIGIN", "localhost:5173"),
	GIN_MODE:                os.Getenv("GIN_MODE"),
	PORT:                    getenv("PORT", "4000"),
	MIN_PLAYERS:             getenvInt("MIN_PLAYERS", 3),
	MAX_PLAYERS:             getenvInt("MAX_PLAYERS", 5),
	TURN_TIME_SECONDS:       getenvInt("TURN_TIME_SECONDS", 30),
	TOTAL_GAME_TIME_SECONDS: getenvInt("TOTAL_GAME_TIME_SECONDS", 300),
	FORMATION_GRACE_SECONDS: getenvInt("FORMATION_GRACE_SECONDS", 3),
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
