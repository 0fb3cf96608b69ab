package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/app"
	"github.com/odyssey-erp/trade-admin/internal/crud"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/defaultlocations"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/defaulttransports"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/itemparameters"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/items"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/lineparameters"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/parameters"
	"github.com/odyssey-erp/trade-admin/internal/masterdata/transports"
	"github.com/odyssey-erp/trade-admin/internal/observability"
	"github.com/odyssey-erp/trade-admin/internal/offer"
	"github.com/odyssey-erp/trade-admin/internal/selector"
	"github.com/odyssey-erp/trade-admin/internal/settings"
	"github.com/odyssey-erp/trade-admin/internal/shared"
	"github.com/odyssey-erp/trade-admin/internal/view"
	"github.com/odyssey-erp/trade-admin/report"
)

// optionLimit bounds how many records one selector source loads.
const optionLimit = 500

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "trade_admin_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	api := apiclient.New(cfg.APIBase(),
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}),
		apiclient.WithLogger(logger),
		apiclient.WithObserver(metrics),
	)
	logger.Info("backend configured", slog.String("base_url", api.BaseURL()))

	paramCollection := parameters.NewCollection(api)
	options := selector.NewRegistry()
	options.Register("items", selector.FromCollection(items.NewCollection(api), optionLimit, "no", items.Option))
	options.Register("parameters", selector.FromCollection(paramCollection, optionLimit, "code", parameters.Option))
	options.Register("transports", selector.FromCollection(transports.NewCollection(api), optionLimit, "transportNo", transports.Option))

	pages := []crud.Page{
		crud.NewHandler(logger, parameters.NewResource(api), templates, csrfManager, options),
		crud.NewHandler(logger, itemparameters.NewResource(api), templates, csrfManager, options),
		crud.NewHandler(logger, defaultlocations.NewResource(api), templates, csrfManager, options),
		crud.NewHandler(logger, defaulttransports.NewResource(api), templates, csrfManager, options),
		crud.NewHandler(logger, transports.NewResource(api), templates, csrfManager, options),
		crud.NewHandler(logger, lineparameters.NewResource(api, paramCollection), templates, csrfManager, options),
	}
	settingsHandler := settings.NewHandler(logger, apiclient.NewSettingsClient(api), templates, csrfManager)

	reportClient := report.NewClient(cfg.GotenbergURL, nil)
	reportHandler := report.NewHandler(reportClient, logger)

	renderer, err := newRenderer(cfg, reportClient)
	if err != nil {
		logger.Error("configure pdf renderer", slog.Any("error", err))
		os.Exit(1)
	}
	exporter := offer.NewExporter(
		offer.NewSource(api, cfg.OfferLinesPageSize),
		offer.NewLogoLoader(cfg.LogoURL, nil),
		renderer,
		metrics,
		logger,
	)
	previews := offer.NewPreviewStore(redisClient, cfg.PreviewTTL)
	offerHandler := offer.NewHandler(logger, exporter, previews, templates, csrfManager, offer.Language(cfg.DefaultLanguage))

	params := app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Templates:       templates,
		SessionManager:  sessionManager,
		CSRFManager:     csrfManager,
		Pages:           pages,
		SettingsHandler: settingsHandler,
		OfferHandler:    offerHandler,
		OptionsHandler:  selector.NewHandler(logger, options),
		ReportHandler:   reportHandler,
		Metrics:         metrics,
	}
	templates.SetNav(app.Navigation(params))
	router := app.NewRouter(params)

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("pdf_renderer", renderer.Name()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func newRenderer(cfg *app.Config, client *report.Client) (offer.Renderer, error) {
	if cfg.PDFRenderer == offer.GotenbergRendererName {
		r, err := offer.NewGotenbergRenderer(client)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return offer.NewMarotoRenderer(), nil
}
