package main

import (
	"net/http"
	"slices"
	"time"

	"github.com/DoriPlg/OneStroke/game"
	"github.com/DoriPlg/OneStroke/shared/configs"
	"github.com/DoriPlg/OneStroke/shared/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.JSON(http.StatusForbidden, gin.H{"error": "forbidden origin"})
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowHeaders: []string{
			"Content-Type",
			"Origin",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	var allowedOrigins []string
	if configs.Envs.GIN_MODE == "release" {
		gin.SetMode(gin.ReleaseMode)
		allowedOrigins = append(allowedOrigins, "https://"+configs.Envs.FRONTEND_ORIGIN)
		allowedOrigins = append(allowedOrigins, "https://www."+configs.Envs.FRONTEND_ORIGIN)
	} else {
		logger.SetDebug()
		allowedOrigins = append(allowedOrigins, "http://"+configs.Envs.FRONTEND_ORIGIN)
	}

	settings := game.Settings{
		MinPlayers:     configs.Envs.MIN_PLAYERS,
		MaxPlayers:     configs.Envs.MAX_PLAYERS,
		TurnTime:       time.Duration(configs.Envs.TURN_TIME_SECONDS) * time.Second,
		TotalGameTime:  time.Duration(configs.Envs.TOTAL_GAME_TIME_SECONDS) * time.Second,
		FormationGrace: time.Duration(configs.Envs.FORMATION_GRACE_SECONDS) * time.Second,
	}

	idGen := game.NewIdGen()
	tickerGen := game.NewTickerGen()
	coordinator := game.NewCoordinator(settings, &idGen, &tickerGen)

	coordinatorStarted := make(chan struct{})
	go coordinator.Run(coordinatorStarted)
	<-coordinatorStarted

	r := CreateServer(allowedOrigins)
	game.RegisterRoute(r, game.NewGameHandler(coordinator))

	logger.Infof("Listening on port %s", configs.Envs.PORT)
	if err := r.Run(":" + configs.Envs.PORT); err != nil {
		logger.Fatalf("Couldn't start server: %v", err)
	}
}
