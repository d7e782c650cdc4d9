// Package app wires the web front end's services together in a samber/do
// container. Each provider builds one service from the ones it invokes, and
// shutting the container down stops them in reverse order.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nfrund/healthtrack/internal/account"
	"github.com/nfrund/healthtrack/internal/config"
	"github.com/nfrund/healthtrack/internal/metrics"
	"github.com/nfrund/healthtrack/internal/pubsub"
	"github.com/nfrund/healthtrack/internal/server"
	"github.com/samber/do/v2"
	"go.opentelemetry.io/otel/trace"
)

// Tracing is the process tracer and the flush that stops it.
type Tracing struct {
	Tracer  trace.Tracer
	cleanup func()
}

// Shutdown flushes pending spans.
func (t *Tracing) Shutdown() {
	if t.cleanup != nil {
		t.cleanup()
	}
}

// Bus is the in-process event bus.
type Bus struct {
	*pubsub.WatermillBridge
}

// Shutdown closes the bus; subscriptions end.
func (b *Bus) Shutdown() error {
	return b.Close()
}

// New registers every provider on a fresh container. Nothing is built until
// it is invoked.
func New(cfg *config.Config) *do.RootScope {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.Provide(i, provideMetrics)
	do.Provide(i, provideTracing)
	do.Provide(i, provideBus)
	do.Provide(i, provideAccounts)
	do.Provide(i, provideServer)
	return i
}

// Server builds the web server and everything it depends on.
func Server(i do.Injector) (*server.Server, error) {
	return do.Invoke[*server.Server](i)
}

// Shutdown stops every built service and logs the outcome.
func Shutdown(i *do.RootScope) {
	report := i.Shutdown()
	slog.Info("Services stopped", "report", report)
}

func provideMetrics(do.Injector) (*metrics.Collector, error) {
	return metrics.New(), nil
}

// tracingConfig lays the configured tracing settings over the defaults.
func tracingConfig(cfg *config.Config) pubsub.TracingConfig {
	tc := pubsub.DefaultTracingConfig()
	tc.Enabled = cfg.TracingEnabled
	if cfg.TracingServiceName != "" {
		tc.ServiceName = cfg.TracingServiceName
	}
	if cfg.TracingZipkinURL != "" {
		tc.ZipkinURL = cfg.TracingZipkinURL
	}
	return tc
}

func provideTracing(i do.Injector) (*Tracing, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tracer, cleanup, err := pubsub.SetupOTel(context.Background(), tracingConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &Tracing{Tracer: tracer, cleanup: cleanup}, nil
}

func provideBus(i do.Injector) (*Bus, error) {
	tracing, err := do.Invoke[*Tracing](i)
	if err != nil {
		return nil, err
	}
	return &Bus{pubsub.NewWatermillBridgeWithTracer(tracing.Tracer)}, nil
}

func provideAccounts(i do.Injector) (*account.Factory, error) {
	cfg := do.MustInvoke[*config.Config](i)
	bus, err := do.Invoke[*Bus](i)
	if err != nil {
		return nil, err
	}
	return &account.Factory{
		BaseURL:   cfg.APIBaseURL,
		HTTP:      &http.Client{Timeout: cfg.HTTPTimeout},
		Observer:  do.MustInvoke[*metrics.Collector](i),
		Publisher: bus,
	}, nil
}

func provideServer(i do.Injector) (*server.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	accounts, err := do.Invoke[*account.Factory](i)
	if err != nil {
		return nil, err
	}
	bus, err := do.Invoke[*Bus](i)
	if err != nil {
		return nil, err
	}
	return server.New(server.Dependencies{
		Config:   cfg,
		Accounts: accounts,
		Metrics:  do.MustInvoke[*metrics.Collector](i),
		Bus:      bus,
	}), nil
}
