package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CPU-commits/Intranet_BCourseStats/middlewares"
	controllers_query "github.com/CPU-commits/Intranet_BCourseStats/query/controllers"
	"github.com/CPU-commits/Intranet_BCourseStats/res"
	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

type Config struct {
	Port         string
	ClientURL    string
	JWTSecretKey string
	RateLimit    uint
	Prod         bool
}

type Controllers struct {
	Courses *controllers_query.CoursesController
	Stats   *controllers_query.StatsController
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, &res.Response{
		Success: false,
		Message: "Too many requests. Try again in " + time.Until(info.ResetTime).String(),
	})
}

func corsConfig(clientURL string) cors.Config {
	config := cors.Config{
		AllowMethods:    []string{"GET", "OPTIONS", "POST"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", middlewares.REQUEST_ID_HEADER},
		ExposeHeaders:   []string{"Content-Disposition", middlewares.REQUEST_ID_HEADER},
		AllowWebSockets: false,
		MaxAge:          12 * time.Hour,
	}
	if clientURL == "" {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowOrigins = []string{"http://" + clientURL, "https://" + clientURL}
	config.AllowCredentials = true
	return config
}

func registerRoutes(group *gin.RouterGroup, config Config, ctrls Controllers) {
	courses := group.Group("/courses")
	{
		courses.GET("/historical-instructors", ctrls.Courses.GetHistoricalInstructors)
		courses.GET("/course-search", ctrls.Courses.CourseSearch)
		courses.GET("/subjects", ctrls.Courses.GetSubjects)
	}
	stats := group.Group("/stats")
	{
		stats.GET("/historical-instructors", ctrls.Courses.GetHistoricalInstructors)
		stats.GET("/enrollment-rate", ctrls.Stats.GetEnrollmentRate)
		stats.GET("/enrollment-rate/export", ctrls.Stats.ExportEnrollmentRate)
		stats.GET("/course-statistics", ctrls.Stats.GetCourseStatistics)
		stats.GET("/data", ctrls.Stats.GetData)
		stats.POST(
			"/data",
			middlewares.JWTMiddleware(config.JWTSecretKey),
			ctrls.Stats.InsertData,
		)
	}
}

func NewRouter(logger *zap.Logger, config Config, ctrls Controllers) *gin.Engine {
	router := gin.New()
	// Proxies
	router.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	// Zap logger
	router.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/healthz", "/metrics"},
	}))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, res.Response{
			Success: false,
			Message: fmt.Sprintf("Internal server error: %v", recovered),
		})
	}))
	router.Use(middlewares.RequestID())
	// Metrics
	metrics := middlewares.NewMetrics()
	router.Use(metrics.Middleware())
	// CORS
	router.Use(cors.New(corsConfig(config.ClientURL)))
	// Secure
	secureConfig := secure.Config{
		STSSeconds:           315360000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		IENoOpen:             true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		SSLProxyHeaders: map[string]string{
			"X-Forwarded-Proto": "https",
		},
		IsDevelopment: !config.Prod,
	}
	router.Use(secure.New(secureConfig))
	// Rate limit
	limit := config.RateLimit
	if limit == 0 {
		limit = 7
	}
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: limit,
	})
	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: ErrorHandler,
		KeyFunc:      keyFunc,
	})
	// Routes
	registerRoutes(router.Group("/", mw), config, ctrls)
	registerRoutes(router.Group("/api", mw), config, ctrls)
	// Route healthz
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, &res.Response{
			Success: true,
		})
	})
	router.GET("/metrics", metrics.Handler())
	// No route
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, res.Response{
			Success: false,
			Message: "Not found",
		})
	})
	return router
}

// Init serves until SIGINT or SIGTERM, then drains in-flight requests.
func Init(logger *zap.Logger, config Config, ctrls Controllers) error {
	if err := InitValidators(); err != nil {
		return err
	}
	if config.Prod {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewRouter(logger, config, ctrls)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           gzhttp.GzipHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
