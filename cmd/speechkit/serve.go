package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbukum/speechkit/api"
	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/bootstrap"
	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/ledger"
	"github.com/kbukum/speechkit/locale"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/redis"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/speechapi"
	"github.com/kbukum/speechkit/sse"
	"github.com/kbukum/speechkit/storage"
	"github.com/kbukum/speechkit/transcription"
	"github.com/kbukum/speechkit/transcription/gateway"

	// Storage providers register themselves with the factory.
	_ "github.com/kbukum/speechkit/storage/azure"
	_ "github.com/kbukum/speechkit/storage/memory"
	_ "github.com/kbukum/speechkit/storage/s3"
)

const jobEventsPath = "/api/batch/events"

func newServeCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return &configError{err: err}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *AppConfig) error {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return &configError{err: err}
	}
	metrics, err := setupObservability(ctx, app)
	if err != nil {
		return err
	}

	storageComp := storage.NewComponent(cfg.Storage, app.Logger)
	redisComp := redis.NewComponent(cfg.Redis, app.Logger)
	eventsComp := sse.NewComponent(jobEventsPath, app.Logger)
	for _, c := range []component.Component{redisComp, storageComp, eventsComp} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	app.OnConfigure(func(ctx context.Context, app *bootstrap.App[*AppConfig]) error {
		h, err := newHandler(app.Cfg, app.Logger, metrics, storageComp.Storage(), redisComp.Client(), eventsComp.Hub())
		if err != nil {
			return err
		}

		srv := server.New(app.Cfg.Server, app.Logger, server.WithMetrics(metrics))
		srv.RegisterDefaultEndpoints(app.Name, app.Components.HealthAll)
		srv.OnShutdown(eventsComp.Hub().Close)
		h.Register(srv.GinEngine())

		// The server starts last and stops first.
		return app.Attach(ctx, server.NewComponent(srv))
	})

	return app.Run(ctx)
}

// newHandler wires the platform client, the orchestrator and the live
// session into the API handler. store and rdb may be nil.
func newHandler(cfg *AppConfig, log *logger.Logger, metrics *observability.Metrics,
	store storage.Storage, rdb *redis.Client, hub *sse.Hub) (*api.Handler, error) {
	if err := cfg.Speech.Config.Validate(); err != nil {
		return nil, &configError{err: err}
	}
	client, err := speechapi.New(cfg.Speech.Config, log, speechapi.WithMetrics(metrics))
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	batchOpts := []batch.Option{batch.WithMetrics(metrics), batch.WithNotifier(api.JobNotifier(hub))}
	if store != nil {
		batchOpts = append(batchOpts, batch.WithStorage(store))
	} else {
		log.Warn("blob storage not configured, batch uploads are disabled")
	}
	svc := batch.NewService(client, cfg.Speech.Batch, log, batchOpts...)

	localeOpts := []locale.Option{locale.WithTTL(cfg.Speech.LocaleTTL)}
	if rdb != nil {
		localeOpts = append(localeOpts, locale.WithCache(locale.NewRedisCache(rdb)))
	}
	catalogue := locale.NewCatalogue(client, log, localeOpts...)

	rec, err := gateway.New(cfg.Gateway, log)
	if err != nil {
		return nil, fmt.Errorf("speech gateway: %w", err)
	}
	session := transcription.NewSession(rec, cfg.Speech.Live, log, transcription.WithMetrics(metrics))

	return api.New(svc, ledger.New(log), log,
		api.WithConfig(cfg.API),
		api.WithLocales(catalogue),
		api.WithSession(session),
		api.WithEvents(hub),
	), nil
}

// setupObservability starts the OTLP exporters when enabled. The returned
// metrics are nil otherwise; every recorder accepts a nil receiver.
func setupObservability(ctx context.Context, app *bootstrap.App[*AppConfig]) (*observability.Metrics, error) {
	oc := app.Cfg.Observability
	if !oc.Enabled {
		return nil, nil
	}
	env := app.Cfg.Environment

	tp, err := observability.InitTracer(ctx, oc.Tracer(app.Name, app.Version, env))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	mc := oc.Meter(app.Name, app.Version, env)
	mp, err := observability.InitMeter(ctx, &mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}
	app.OnStop(tp.Shutdown, mp.Shutdown)

	metrics, err := observability.NewMetrics(observability.Meter(app.Name))
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	return metrics, nil
}
