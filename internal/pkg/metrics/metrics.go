package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface consumed by the services.
type Recorder interface {
	RecordPunch(phase string)
	RecordDuplicate(phase string)
	RecordPreconditionFailure()
	RecordFaceReject()
	RecordFaceLatency(d time.Duration)
	RecordSync(success bool)
}

// Collector implements Recorder on top of Prometheus.
type Collector struct {
	punches       *prometheus.CounterVec
	duplicates    *prometheus.CounterVec
	preconditions prometheus.Counter
	faceRejects   prometheus.Counter
	faceLatency   prometheus.Histogram
	syncSuccess   prometheus.Counter
	syncFailure   prometheus.Counter
}

// NewCollector registers the attendance metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		punches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "absensi_punches_total",
			Help: "Punches recorded, by phase.",
		}, []string{"phase"}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "absensi_duplicate_punches_total",
			Help: "Punches reported as already recorded, by phase.",
		}, []string{"phase"}),
		preconditions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "absensi_precondition_failures_total",
			Help: "Check-outs rejected because no check-in existed.",
		}),
		faceRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "absensi_face_rejects_total",
			Help: "Face identifications rejected (unknown or failed).",
		}),
		faceLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "absensi_face_latency_seconds",
			Help:    "Latency of face service calls.",
			Buckets: prometheus.DefBuckets,
		}),
		syncSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "absensi_record_sync_total",
			Help: "Attendance record projections written.",
		}),
		syncFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "absensi_record_sync_failures_total",
			Help: "Attendance record projections that failed to write.",
		}),
	}

	reg.MustRegister(
		c.punches,
		c.duplicates,
		c.preconditions,
		c.faceRejects,
		c.faceLatency,
		c.syncSuccess,
		c.syncFailure,
	)

	return c
}

func (c *Collector) RecordPunch(phase string) {
	c.punches.WithLabelValues(phase).Inc()
}

func (c *Collector) RecordDuplicate(phase string) {
	c.duplicates.WithLabelValues(phase).Inc()
}

func (c *Collector) RecordPreconditionFailure() {
	c.preconditions.Inc()
}

func (c *Collector) RecordFaceReject() {
	c.faceRejects.Inc()
}

func (c *Collector) RecordFaceLatency(d time.Duration) {
	c.faceLatency.Observe(d.Seconds())
}

func (c *Collector) RecordSync(success bool) {
	if success {
		c.syncSuccess.Inc()
		return
	}
	c.syncFailure.Inc()
}

// Handler returns the scrape endpoint for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
