package merge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	methodOverride  = "override"
	methodInherited = "inherited"
	methodHidden    = "hidden"
)

var (
	// methodsTotal counts inherited methods by outcome.
	// Labels: kind (override, inherited, hidden)
	methodsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wrapmerge",
		Subsystem: "resolver",
		Name:      "methods_total",
		Help:      "Inherited methods merged by outcome",
	}, []string{"kind"})

	// filesLoadedTotal counts header files loaded while resolving ancestors.
	filesLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wrapmerge",
		Subsystem: "resolver",
		Name:      "files_loaded_total",
		Help:      "Header files loaded to resolve ancestors",
	})

	// truncationsTotal counts skipped ancestor branches.
	// Labels: reason (no_index, no_entry, not_declared)
	truncationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wrapmerge",
		Subsystem: "resolver",
		Name:      "truncations_total",
		Help:      "Ancestor branches skipped because the class could not be resolved",
	}, []string{"reason"})

	// failuresTotal counts fatal resolution failures.
	// Labels: stage (locate, read, parse, overlay, cycle, depth)
	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wrapmerge",
		Subsystem: "resolver",
		Name:      "failures_total",
		Help:      "Fatal ancestor resolution failures by stage",
	}, []string{"stage"})
)

func observeMethod(kind string) {
	methodsTotal.WithLabelValues(kind).Inc()
}

func observeTruncation(reason string) {
	truncationsTotal.WithLabelValues(reason).Inc()
}

func observeFailure(stage string) {
	failuresTotal.WithLabelValues(stage).Inc()
}
