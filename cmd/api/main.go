package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CastingWorksHQ/casting-api/internal/billing"
	"github.com/CastingWorksHQ/casting-api/internal/config"
	dbpkg "github.com/CastingWorksHQ/casting-api/internal/db"
	"github.com/CastingWorksHQ/casting-api/internal/logger"
	"github.com/CastingWorksHQ/casting-api/internal/routes"
	"github.com/CastingWorksHQ/casting-api/internal/session"
)

func main() {

	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		panic(err)
	}
	log := logger.Get()
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	var revoked session.RevocationStore
	if cfg.RedisAddr != "" {
		revoked = session.NewRedisRevocationStore(cfg.RedisAddr, cfg.RedisPassword)
		log.Info("session revocation backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		revoked = session.NewMemoryRevocationStore()
		log.Warn("session revocation is in-memory, tokens survive restarts until expiry")
	}
	sessions := session.NewResolver(db, cfg.JWTSecret, revoked)

	var provider billing.Provider
	if cfg.MPAccessToken != "" {
		mp, err := billing.NewMercadoPago(cfg.MPAccessToken)
		if err != nil {
			log.Fatal("mercado pago client init failed", zap.Error(err))
		}
		provider = mp
	} else {
		provider = billing.NewNoOp(log)
		log.Warn("billing sync disabled, no access token configured")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, sessions, provider, log)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
