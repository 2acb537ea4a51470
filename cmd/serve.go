package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "taskhero.com/taskhero/internal/configs"
	httpapi "taskhero.com/taskhero/internal/http"
	"taskhero.com/taskhero/internal/identity"
	"taskhero.com/taskhero/internal/mail"
	"taskhero.com/taskhero/internal/ratelimit"
	repository "taskhero.com/taskhero/internal/repositories"
	"taskhero.com/taskhero/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the TaskHero HTTP API and the mail worker pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		redisClient, err := config.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		store := repository.NewStore(database)
		sessions := identity.NewRedisSessionStore(redisClient, cfg.SessionKeyPrefix)
		provider := identity.NewLocalProvider(store.Users, sessions, identity.Options{
			AccessTTL:   cfg.AccessTokenTTL,
			RefreshTTL:  cfg.RefreshTokenTTL,
			RecoveryTTL: cfg.RecoveryTokenTTL,
			BcryptCost:  cfg.BcryptCost,
		})

		mailPool := services.NewMailPool(mail.LogMailer{}, cfg.MailWorkers, cfg.MailQueueSize)

		taskService := services.NewTaskService(store)
		offerService := services.NewOfferService(store)
		authService := services.NewAuthService(provider, mailPool, cfg.PasswordResetURL, cfg.MailFrom)
		dashboardService := services.NewDashboardService(taskService, offerService)

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(taskService, offerService, authService, dashboardService, map[string]httpapi.Pinger{
			"database": store,
			"sessions": sessions,
		})
		var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute)
		if cfg.RateLimitBackend == config.RateLimitRedis {
			limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitKeyPrefix, cfg.RateLimit, time.Minute)
		}

		httpapi.Register(e, handler, httpapi.RouteOptions{
			Limiter:        limiter,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Verifier:       authService,
			TrustedProxies: cfg.TrustedProxies,
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
		mailPool.Shutdown(shutdownCtx)

		log.Println("HTTP server and mail pool shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
