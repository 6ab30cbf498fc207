package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	options_app "github.com/wyfcoding/quantanalytics/internal/options/application"
	options_http "github.com/wyfcoding/quantanalytics/internal/options/interfaces/http"
	sim_app "github.com/wyfcoding/quantanalytics/internal/simulation/application"
	sim_http "github.com/wyfcoding/quantanalytics/internal/simulation/interfaces/http"
	"github.com/wyfcoding/quantanalytics/pkg/config"
	"github.com/wyfcoding/quantanalytics/pkg/logger"
	"github.com/wyfcoding/quantanalytics/pkg/metrics"
	"github.com/wyfcoding/quantanalytics/pkg/middleware"
	"github.com/wyfcoding/quantanalytics/pkg/ratelimit"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/analytics/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	// 2. Logger
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting analytics service",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	// 3. Metrics
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.ServiceName)
		if err := m.Register(); err != nil {
			panic(fmt.Sprintf("register metrics failed: %v", err))
		}
		metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 4. Application
	simService := sim_app.NewSimulationService(sim_app.Limits{
		MaxSimulations:   cfg.Engine.MaxSimulations,
		MaxSteps:         cfg.Engine.MaxSteps,
		MinHistogramBins: cfg.Engine.MinHistogramBins,
		MaxHistogramBins: cfg.Engine.MaxHistogramBins,
		MaxPathBudget:    cfg.Engine.MaxPathBudget,
	}, cfg.Engine.Workers, m)
	greeksService := options_app.NewGreeksService(cfg.Engine.MaxSurfacePoints, m)

	// 5. Interfaces
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GinLogging())
	if m != nil {
		r.Use(middleware.GinMetrics(m))
	}
	if cfg.RateLimit.Enabled {
		r.Use(middleware.GinRateLimit(ratelimit.NewLocalRateLimiter(), ratelimit.Limit{
			Rate:   cfg.RateLimit.Rate,
			Period: time.Duration(cfg.RateLimit.PeriodSeconds) * time.Second,
			Burst:  cfg.RateLimit.Burst,
		}))
	}

	sys := r.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		sys.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	}
	pp := r.Group("/debug/pprof")
	{
		pp.GET("/", gin.WrapF(pprof.Index))
		pp.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pp.GET("/profile", gin.WrapF(pprof.Profile))
		pp.GET("/symbol", gin.WrapF(pprof.Symbol))
		pp.GET("/trace", gin.WrapF(pprof.Trace))
	}

	sim_http.NewSimulationHandler(simService).RegisterRoutes(&r.RouterGroup)
	options_http.NewGreeksHandler(greeksService).RegisterRoutes(&r.RouterGroup)

	// 6. Start
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(ctx, "HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 7. Graceful Shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(ctx, "shutting down server...")
		case <-gctx.Done():
			logger.Info(ctx, "context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
