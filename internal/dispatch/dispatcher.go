package dispatch

import (
	"context"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/PrayatshuMisra/hacka-nexus/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Provider constructs a backing client for the credential. An error means the
// client is unavailable and the next provider is tried.
type Provider struct {
	Name string
	New  func(apiKey string) (any, error)
}

type Recorder interface {
	ObserveDispatch(provider, outcome string, d time.Duration)
}

const (
	outcomeOK            = "ok"
	outcomeConfig        = "config_error"
	outcomeIntegration   = "integration_error"
	outcomeUnsupported   = "unsupported"
	outcomeBackendFailed = "backend_error"
)

// Dispatcher resolves a backing client per call and forwards the task to it.
// It keeps no state between calls and is safe for concurrent use.
type Dispatcher struct {
	apiKey    string
	providers []Provider

	recorder Recorder
}

func NewDispatcher(apiKey string, providers ...Provider) *Dispatcher {
	return &Dispatcher{
		apiKey:    apiKey,
		providers: providers,
	}
}

func (d *Dispatcher) WithRecorder(r Recorder) *Dispatcher {
	d.recorder = r
	return d
}

// Dispatch runs req on the first available provider and returns its result unmodified.
func (d *Dispatcher) Dispatch(ctx context.Context, req *model.TaskRequest) (any, error) {
	start := time.Now()
	l := logger.FromContext(ctx)

	if d.apiKey == "" {
		d.observe("", outcomeConfig, start)
		return nil, ErrConfiguration
	}

	name, client, err := d.resolve(ctx)
	if err != nil {
		l.Error("no task client available", zap.Error(err))
		d.observe("", outcomeIntegration, start)
		return nil, err
	}

	backend, err := Adapt(client)
	if err != nil {
		l.Error("task client has no supported method", zap.String("provider", name))
		d.observe(name, outcomeUnsupported, start)
		return nil, errors.Wrapf(err, "provider %s", name)
	}

	l.Debug("dispatching task",
		zap.String("provider", name),
		zap.String("method", backend.Method()),
		zap.String("task", req.TaskName()))

	res, err := backend.Run(ctx, req)
	if err != nil {
		d.observe(name, outcomeBackendFailed, start)
		return nil, err
	}

	d.observe(name, outcomeOK, start)
	return res, nil
}

func (d *Dispatcher) resolve(ctx context.Context) (string, any, error) {
	l := logger.FromContext(ctx)

	failures := make([]ProviderFailure, 0, len(d.providers))
	for _, p := range d.providers {
		client, err := p.New(d.apiKey)
		if err == nil && client != nil {
			return p.Name, client, nil
		}
		if err == nil {
			err = errors.New("provider returned no client")
		}
		l.Warn("task client provider unavailable", zap.String("provider", p.Name), zap.Error(err))
		failures = append(failures, ProviderFailure{Provider: p.Name, Err: err})
	}

	return "", nil, &IntegrationError{Failures: failures}
}

func (d *Dispatcher) observe(provider, outcome string, start time.Time) {
	if d.recorder == nil {
		return
	}
	d.recorder.ObserveDispatch(provider, outcome, time.Since(start))
}
