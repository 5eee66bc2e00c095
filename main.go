package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/fxmonitor/src/config"
	"github.com/username/fxmonitor/src/database"
	"github.com/username/fxmonitor/src/handlers"
	"github.com/username/fxmonitor/src/logger"
	"github.com/username/fxmonitor/src/parsers"
	"github.com/username/fxmonitor/src/services"
	"github.com/username/fxmonitor/src/storage"
	"golang.org/x/time/rate"
)

func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				logger.L.Warn("Rate limit exceeded",
					"method", r.Method,
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin == config.Cfg.CORSAllowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Requested-With, X-Request-ID, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag, X-Request-ID")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("FX deviation monitor backend starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	db := database.InitDB(config.Cfg.DatabasePath)
	store := storage.NewStore(db)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing analysis cache...")
	analysisCache := cache.New(config.Cfg.AnalysisCacheExpiry, config.Cfg.AnalysisCacheCleanup)

	logger.L.Info("Initializing services and handlers...")
	thresholdParser := parsers.NewThresholdParser()
	thresholdService := services.NewThresholdService(store, thresholdParser, analysisCache)
	tradeService := services.NewTradeService(store, analysisCache)
	consolidationService := services.NewConsolidationService(store)
	analysisService := services.NewAnalysisService(store, analysisCache)

	if config.Cfg.SeedSampleData {
		logger.L.Info("Seeding sample data...")
		if err := tradeService.SeedSampleData(); err != nil {
			logger.L.Error("Failed to seed sample data", "error", err)
		}
	}

	thresholdHandler := handlers.NewThresholdHandler(thresholdService)
	tradeHandler := handlers.NewTradeHandler(tradeService, store)
	consolidationHandler := handlers.NewConsolidationHandler(consolidationService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	exportHandler := handlers.NewExportHandler(tradeService, thresholdService)
	dashboardHandler := handlers.NewDashboardHandler(store)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("GET /api/dashboard/config", dashboardHandler.HandleGetConfig)
	apiRouter.HandleFunc("POST /api/dashboard/config", dashboardHandler.HandleUpdateConfig)

	apiRouter.HandleFunc("GET /api/trades", tradeHandler.HandleGetTrades)
	apiRouter.HandleFunc("POST /api/trades/fetch", tradeHandler.HandleFetchTrades)
	apiRouter.HandleFunc("GET /api/exceptions", tradeHandler.HandleGetExceptions)

	apiRouter.HandleFunc("GET /api/thresholds", thresholdHandler.HandleGetThresholds)
	apiRouter.HandleFunc("POST /api/thresholds/upload", thresholdHandler.HandleUploadThresholds)
	apiRouter.HandleFunc("PATCH /api/thresholds/{id}", thresholdHandler.HandleUpdateThreshold)

	apiRouter.HandleFunc("POST /api/analysis/run", analysisHandler.HandleRunAnalysis)
	apiRouter.HandleFunc("POST /api/analysis/deviation-buckets", analysisHandler.HandleDeviationBuckets)
	apiRouter.HandleFunc("POST /api/analysis/impact", analysisHandler.HandleThresholdImpact)

	apiRouter.HandleFunc("GET /api/export/{type}", exportHandler.HandleExport)

	apiRouter.HandleFunc("POST /api/files/upload", consolidationHandler.HandleUploadFiles)
	apiRouter.HandleFunc("GET /api/files/uploads", consolidationHandler.HandleGetFileUploads)

	apiRouter.HandleFunc("POST /api/consolidation/create", consolidationHandler.HandleCreateConsolidation)
	apiRouter.HandleFunc("GET /api/consolidation/datasets", consolidationHandler.HandleGetDatasets)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "FX deviation monitor backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	limiter := rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst)
	finalHandler := enableCORS(rateLimitMiddleware(limiter)(handlers.RequestIDMiddleware(rootMux)))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
