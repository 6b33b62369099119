package loader

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/bayleafwalker/bindery-modloader/internal/metrics"
)

// phaseObserver attributes each lifecycle step to its mod and phase in the
// log and times it.
type phaseObserver struct {
	logger  logr.Logger
	metrics *metrics.Metrics
}

func (o *phaseObserver) Enter(mod, phase string) func() {
	start := time.Now()
	logger := o.logger.WithValues("mod", mod, "phase", phase)
	logger.V(1).Info("entering phase")
	return func() {
		elapsed := time.Since(start)
		o.metrics.ObservePhase(phase, elapsed)
		logger.V(1).Info("left phase", "duration", elapsed)
	}
}
