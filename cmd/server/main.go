package main

import (
	"context"
	"log"
	"os"
	"time"

	"broker_backend/internal/app/router"
	authadapters "broker_backend/internal/feature/auth/adapters"
	authhandler "broker_backend/internal/feature/auth/transport/handler"
	authusecase "broker_backend/internal/feature/auth/usecase"
	"broker_backend/internal/feature/logolookup/adapters/gemini"
	"broker_backend/internal/feature/logolookup/adapters/vision"
	logolookuphandler "broker_backend/internal/feature/logolookup/transport/handler"
	logolookupusecase "broker_backend/internal/feature/logolookup/usecase"
	stockadapters "broker_backend/internal/feature/stocks/adapters"
	stockhandler "broker_backend/internal/feature/stocks/transport/handler"
	stockusecase "broker_backend/internal/feature/stocks/usecase"
	"broker_backend/internal/feature/stocks/validation"
	platformdb "broker_backend/internal/platform/db"
	jwtmw "broker_backend/internal/platform/jwt"
	platformredis "broker_backend/internal/platform/redis"
	"broker_backend/internal/platform/session"
	"broker_backend/internal/shared/ratelimiter"
)

const (
	accessTokenTTL  = 15 * time.Minute
	sessionPrefix   = "session"
	visionRateLimit = 30 // Vision calls per minute
)

func main() {
	ctx := context.Background()

	db := platformdb.OpenDB()

	// Refresh sessions live in Redis, so the service cannot run without it.
	rdb, err := platformredis.NewRedisClient()
	if err != nil {
		log.Fatal("Redis is required for session storage: ", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokenGen := jwtmw.NewGenerator(secret, accessTokenTTL)

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	sessionRepo := session.NewSessionRedis(rdb, sessionPrefix)
	stockRepo := stockadapters.NewStockRepository(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen)
	stockUC := stockusecase.NewStockUsecase(stockRepo, validation.NewStockRules())

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	stockH := stockhandler.NewStockHandler(stockUC)

	// The image pipeline needs Google Cloud credentials. When the Vision
	// client cannot be built the identify route is simply not registered.
	var logoLookupH *logolookuphandler.LogoLookupHandler
	if detector, err := vision.NewVisionLogoDetector(ctx); err != nil {
		log.Println("[WARN] Vision client unavailable, /stocks/identify disabled:", err)
	} else {
		defer func() {
			if err := detector.Close(); err != nil {
				log.Println("[ERROR] Failed to close Vision client:", err)
			}
		}()

		var analyzer logolookupusecase.CompanyAnalyzer
		if a, err := gemini.NewGeminiAnalyzer(ctx); err != nil {
			log.Println("[WARN] Gemini client unavailable, matches will carry no brief:", err)
		} else {
			analyzer = a
		}

		limiter := ratelimiter.NewRateLimiter(visionRateLimit, time.Minute)
		logoLookupUC := logolookupusecase.NewLogoLookupUsecase(detector, analyzer, stockRepo, limiter)
		logoLookupH = logolookuphandler.NewLogoLookupHandler(logoLookupUC)
	}

	r := router.NewRouter(authH, stockH, logoLookupH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
