package main

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kaushika05/globlekay/country"
	"github.com/kaushika05/globlekay/game"
	"github.com/kaushika05/globlekay/geo"
	"github.com/kaushika05/globlekay/shared/configs"
	"github.com/kaushika05/globlekay/shared/logger"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	if configs.Envs.GIN_MODE == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowCredentials: true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{
				"Content-Type",
				"Upgrade",
				"Connection",
				"Sec-WebSocket-Key",
				"Sec-WebSocket-Version",
				"Sec-WebSocket-Extensions",
				"Sec-WebSocket-Protocol",
			},
		}))
	}

	return r
}

func main() {
	logger.Setup(configs.Envs.GIN_MODE != "release")

	var allowedOrigins []string
	if configs.Envs.FRONTEND_ORIGIN != "" {
		allowedOrigins = strings.Split(configs.Envs.FRONTEND_ORIGIN, ",")
	}

	catalog, err := country.Load(configs.Envs.COUNTRIES_PATH)
	if err != nil {
		log.Fatal().Err(err).Str("path", configs.Envs.COUNTRIES_PATH).Msg("could not load country catalog")
	}
	log.Info().Int("countries", catalog.Len()).Msg("country catalog loaded")

	store := game.NewStore()
	hub := game.NewHub()
	engine := game.NewEngine(store, catalog, geo.Distance, geo.Colour, game.NewClock(), hub, game.DefaultConfig())
	hub.Bind(engine)

	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 {
			return true
		}
		return slices.Contains(allowedOrigins, origin)
	}

	r := CreateServer(allowedOrigins)
	game.RegisterRoutes(r, game.NewHandler(hub, originAllowed))

	addr := ":" + configs.Envs.PORT
	log.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
