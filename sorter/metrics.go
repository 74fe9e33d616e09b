package sorter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsRead = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "sorter_records_total",
		Help: "The total number of records read for sorting",
	}, []string{"sorter"})

	runsSpilled = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "sorter_runs_spilled_total",
		Help: "The total number of sorted runs spilled to disk",
	}, []string{"sorter"})

	bytesSpilled = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "sorter_spilled_bytes_total",
		Help: "The total number of bytes spilled to disk",
	}, []string{"sorter"})

	mergesDone = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "sorter_merges_total",
		Help: "The total number of completed merge phases",
	}, []string{"sorter"})
)
