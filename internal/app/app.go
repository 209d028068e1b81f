package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/robokrystal/stgmonitoradar/external/oddsmonitor"
	"github.com/robokrystal/stgmonitoradar/internal/config"
	"github.com/robokrystal/stgmonitoradar/internal/interfaces/httpapi"
	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
	"github.com/robokrystal/stgmonitoradar/internal/platform/resilience"
	"github.com/robokrystal/stgmonitoradar/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	platformLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(platformLogger)

	oddsClient := oddsmonitor.NewClient(oddsmonitor.ClientConfig{
		BaseURL:    cfg.OddsMonitorBaseURL,
		AnonKey:    cfg.OddsMonitorAnonKey,
		Origin:     cfg.OddsMonitorOrigin,
		Timeout:    cfg.OddsMonitorTimeout,
		MaxRetries: cfg.OddsMonitorMaxRetries,
		Logger:     platformLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OddsMonitorCircuitEnabled,
			FailureThreshold: cfg.OddsMonitorCircuitFailureCount,
			OpenTimeout:      cfg.OddsMonitorCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OddsMonitorCircuitHalfOpenReq,
		},
	})
	provider := oddsmonitor.NewProvider(oddsClient, platformLogger)

	matchSvc := usecase.NewMatchService(
		provider,
		cfg.CacheTTL,
		cfg.ServeStaleOnFailure,
		nil,
		platformLogger,
	)
	freebetSvc := usecase.NewFreebetService(matchSvc, cfg.FreebetMaxWorkers, platformLogger)

	handler := httpapi.NewHandler(matchSvc, freebetSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
