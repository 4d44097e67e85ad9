package main

import (
	"sync"

	"go.uber.org/zap"

	"recipesql/internal/config"
	"recipesql/internal/metrics"
	"recipesql/internal/metrics/datadog"
	"recipesql/internal/metrics/prompush"
)

// setupMetrics installs the configured metrics backend and returns a func
// that flushes it once. Backend failures are logged and leave the nop
// backend in place; metrics never fail a run.
func setupMetrics(m config.Metrics, logger *zap.Logger) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case "pushgateway":
		b, err = newPushgateway(m)
	case "datadog":
		b, err = newDatadog(m)
	case "", "none":
		logger.Debug("metrics disabled")
		return func() {}
	default:
		logger.Warn("unknown metrics backend; metrics disabled", zap.String("backend", m.Backend))
		return func() {}
	}
	if err != nil {
		logger.Warn("metrics backend init failed; using nop", zap.String("backend", m.Backend), zap.Error(err))
		return func() {}
	}

	metrics.SetBackend(b)
	logger.Info("metrics enabled", zap.String("backend", m.Backend), zap.String("job", m.Job))

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := metrics.Flush(); err != nil {
				logger.Warn("metrics flush failed", zap.Error(err))
			}
		})
	}
}

// newPushgateway and newDatadog return the concrete backend as the interface
// only on success, so a failed constructor never yields a typed nil.
func newPushgateway(m config.Metrics) (metrics.Backend, error) {
	b, err := prompush.NewBackend(m.Job, m.PushgatewayURL)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func newDatadog(m config.Metrics) (metrics.Backend, error) {
	b, err := datadog.NewBackend(datadog.Config{
		Addr:       m.DogStatsDAddr,
		GlobalTags: []string{"service:recipesql"},
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
