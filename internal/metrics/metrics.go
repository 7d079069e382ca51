// Package metrics counts what each tagmirror run did and writes the counters
// in the Prometheus textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	ClassContainer = "container"
	ClassVariable  = "variable"

	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeFailed  = "failed"

	KindTag            = "tag"
	KindStructure      = "tag_structure"
	KindStructureArray = "tag_structure_array"
)

// Metrics owns a private registry so that runs in the same process do not
// share counters.
type Metrics struct {
	registry *prometheus.Registry

	// NodesCreated counts nodes created by mirroring, by class.
	NodesCreated *prometheus.CounterVec
	// LinksBound counts dynamic links set by mirroring.
	LinksBound prometheus.Counter
	// LinksUnresolved counts variables reported by the link audit.
	LinksUnresolved prometheus.Counter
	// AlarmsGenerated counts alarms created.
	AlarmsGenerated prometheus.Counter
	// AlarmDuplicates counts alarms skipped because they already existed.
	AlarmDuplicates prometheus.Counter
	// ImportRows counts imported table rows, by outcome.
	ImportRows *prometheus.CounterVec
	// ExportRows counts exported table rows, by kind.
	ExportRows *prometheus.CounterVec
	// ItemFailures counts per-item failures, by operation.
	ItemFailures *prometheus.CounterVec
}

// New returns zeroed counters registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		NodesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagmirror_mirror_nodes_created_total",
				Help: "Total number of model nodes created by mirroring",
			},
			[]string{"class"},
		),
		LinksBound: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tagmirror_links_bound_total",
				Help: "Total number of dynamic links set by mirroring",
			},
		),
		LinksUnresolved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tagmirror_links_unresolved_total",
				Help: "Total number of variables whose dynamic link does not resolve",
			},
		),
		AlarmsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tagmirror_alarms_generated_total",
				Help: "Total number of digital alarms generated",
			},
		),
		AlarmDuplicates: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tagmirror_alarm_duplicates_total",
				Help: "Total number of alarms skipped because one with the same name existed",
			},
		),
		ImportRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagmirror_import_rows_total",
				Help: "Total number of tag table rows imported",
			},
			[]string{"outcome"},
		),
		ExportRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagmirror_export_rows_total",
				Help: "Total number of tag table rows exported",
			},
			[]string{"kind"},
		),
		ItemFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagmirror_item_failures_total",
				Help: "Total number of nodes or rows that failed to process",
			},
			[]string{"operation"},
		),
	}
}

// Registry returns the registry holding the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes every counter to path in the textfile format.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}

	return nil
}
