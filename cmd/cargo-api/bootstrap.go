package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BearBump/CargoBox/config"
	cargoapi "github.com/BearBump/CargoBox/internal/api/cargo_api"
	"github.com/BearBump/CargoBox/internal/broker/kafka"
	"github.com/BearBump/CargoBox/internal/identity"
	"github.com/BearBump/CargoBox/internal/integrations/backend"
	"github.com/BearBump/CargoBox/internal/services/availability"
	"github.com/BearBump/CargoBox/internal/services/entities"
	"github.com/BearBump/CargoBox/internal/storage/localstore"
)

type cargoAPIApp struct {
	ctx     context.Context
	cancel  context.CancelFunc
	opts    cargoAPIOpts
	api     *cargoapi.API
	gate    *availability.Gate
	closers []func()
}

func loadConfig(cfgPath string) (*config.Config, error) {
	if cfgPath == "" {
		cfg := &config.Config{}
		cfg.ApplyEnv()
		return cfg, nil
	}
	return config.LoadConfig(cfgPath)
}

func identityFromConfig(c config.IdentityConfig) identity.Provider {
	if c.InitData != "" {
		return identity.FromInitData(c.InitData)
	}
	return identity.Static(identity.Identity{
		ID:        c.ID,
		Username:  c.Username,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	})
}

func bootstrapCargoAPI(cfgPath string) (*cargoAPIApp, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	app, err := newCargoAPIApp(cfg)
	if err != nil {
		return nil, err
	}
	app.ctx, app.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return app, nil
}

func newCargoAPIApp(cfg *config.Config) (*cargoAPIApp, error) {
	ids := identityFromConfig(cfg.Identity)

	client := backend.New(cfg.Remote.BaseURL, ids,
		backend.WithProbeTimeout(cfg.Remote.ProbeTimeout()),
		backend.WithRequestTimeout(cfg.Remote.RequestTimeout()),
	)
	gate := availability.New(client)

	blobs, closeBlobs, err := localstore.Open(cfg.Local.DSN)
	if err != nil {
		return nil, err
	}
	app := &cargoAPIApp{gate: gate, closers: []func(){closeBlobs}}

	opts := []entities.Option{entities.WithIdentity(ids)}
	if cfg.Kafka.KafkaEnabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers())
		opts = append(opts, entities.WithPublisher(kafka.NewEntityEvents(producer, cfg.Kafka.Topic)))
		app.closers = append(app.closers, func() { _ = producer.Close() })
		slog.Info("entity change events enabled", "brokers", cfg.Kafka.Brokers(), "topic", cfg.Kafka.Topic)
	}

	stores := entities.NewStores(client, gate, blobs, cfg.Remote.OrdersListTimeout(), opts...)
	app.api = cargoapi.New(stores, gate)

	httpAddr := cfg.HTTP.Addr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	app.opts = cargoAPIOpts{
		httpAddr:    httpAddr,
		swaggerPath: cfg.HTTP.SwaggerPath,
	}
	slog.Info("cargo api configured", "remote", client.BaseURL(), "identity", ids.Current().ID)
	return app, nil
}

func (a *cargoAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *cargoAPIApp) Run() error {
	return runCargoAPI(a.ctx, a.opts, a.api, a.gate)
}
