package http

import (
	"log"
	"net"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "taskhero.com/taskhero/internal/http/middlewares"
	"taskhero.com/taskhero/internal/ratelimit"
)

type RouteOptions struct {
	// Limiter guards /api when set.
	Limiter        ratelimit.Limiter
	AllowedOrigins []string
	Verifier       middleware.Verifier
	// TrustedProxies lists the peers whose X-Forwarded-For is believed.
	// Empty means the TCP peer address is the client IP.
	TrustedProxies []*net.IPNet
}

// ClientIPExtractor picks the client address used for rate limiting. Only
// X-Forwarded-For hops added by a trusted proxy are honored.
func ClientIPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// Register installs the middleware stack and every route on e.
func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	e.HTTPErrorHandler = ErrorHandler
	e.IPExtractor = ClientIPExtractor(opts.TrustedProxies)

	e.Use(echomw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("http: %s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency.Round(time.Microsecond), v.RequestID)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: opts.AllowedOrigins}))

	e.GET("/health", h.Health)

	api := e.Group("/api")
	if opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter))
	}

	required := middleware.RequireAuth(opts.Verifier)
	optional := middleware.OptionalAuth(opts.Verifier)

	auth := api.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout, required)
	auth.POST("/reset-password", h.ResetPassword)
	auth.POST("/update-password", h.UpdatePassword)
	auth.POST("/refresh", h.RefreshToken)
	auth.GET("/profile", h.Profile, required)

	tasks := api.Group("/tasks")
	tasks.GET("", h.ListTasks, optional)
	tasks.GET("/stats", h.TaskStats)
	tasks.GET("/my-tasks", h.ListMyTasks, required)
	tasks.GET("/:id", h.GetTask, optional)
	tasks.POST("", h.CreateTask, optional)
	tasks.PUT("/:id", h.UpdateTask, optional)
	tasks.DELETE("/:id", h.DeleteTask, optional)
	tasks.POST("/:id/complete", h.CompleteTask, required)
	tasks.POST("/:id/decline", h.DeclineTask, required)

	offers := api.Group("/offers")
	offers.GET("/task/:taskId", h.ListTaskOffers, optional)
	offers.GET("/my-offers", h.ListMyOffers, required)
	offers.GET("/:id", h.GetOffer, required)
	offers.POST("", h.CreateOffer, required)
	offers.PUT("/:id", h.UpdateOffer, required)
	offers.DELETE("/:id", h.DeleteOffer, required)

	api.GET("/dashboard", h.Dashboard, required)
}
