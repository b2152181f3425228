// Package metrics provides Prometheus metrics for densify conversions:
// row/value throughput, conversion duration, and per-phase latency.
// Collection is opt-in; when disabled the conversion pipeline never
// touches a collector.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsEmitted tracks the total number of dense rows written.
	// Labels: orientation, status (success/failure)
	RowsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "densify_rows_emitted_total",
			Help: "Total number of dense rows written",
		},
		[]string{"orientation", "status"},
	)

	// ValuesWritten tracks the total number of value fields written,
	// including materialized zeros. Labels: dtype
	ValuesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "densify_values_written_total",
			Help: "Total number of value fields written, zeros included",
		},
		[]string{"dtype"},
	)

	// ConversionDuration tracks end-to-end conversion wall time.
	// Labels: phase (load/convert/total)
	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "densify_conversion_duration_seconds",
			Help: "Conversion duration in seconds",
			Buckets: []float64{
				0.001, // trivial matrices
				0.01,
				0.1,
				1,
				10,
				60,
				600, // large expression matrices
			},
		},
		[]string{"phase"},
	)

	// Throughput tracks the last observed emission rate.
	// Labels: orientation
	Throughput = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "densify_throughput_rows_per_second",
			Help: "Current throughput in rows per second",
		},
		[]string{"orientation"},
	)
)

// Collector binds the shared metric vectors to one conversion run
type Collector struct {
	orientation string
	dtype       string
	startTime   time.Time
}

// NewCollector creates a collector labeling metrics for one conversion
func NewCollector(orientation, dtype string) *Collector {
	return &Collector{
		orientation: orientation,
		dtype:       dtype,
		startTime:   time.Now(),
	}
}

// StartTime returns when the collector was created
func (c *Collector) StartTime() time.Time {
	return c.startTime
}

// RowEmitted records one successfully written row with its value count
func (c *Collector) RowEmitted(valueCount int) {
	RowsEmitted.WithLabelValues(c.orientation, "success").Inc()
	ValuesWritten.WithLabelValues(c.dtype).Add(float64(valueCount))
}

// RowFailed records one row that failed to write
func (c *Collector) RowFailed() {
	RowsEmitted.WithLabelValues(c.orientation, "failure").Inc()
}

// ObservePhase records the duration of one conversion phase
func (c *Collector) ObservePhase(phase string, d time.Duration) {
	ConversionDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// SetThroughput publishes the current emission rate
func (c *Collector) SetThroughput(rowsPerSecond float64) {
	Throughput.WithLabelValues(c.orientation).Set(rowsPerSecond)
}

// Timer provides a simple timing mechanism for measuring phase durations
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Stop returns the elapsed time since the timer was created
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// Name returns the timer's identifier
func (t *Timer) Name() string {
	return t.name
}

// ThroughputTracker counts rows over a window for rate calculation
type ThroughputTracker struct {
	count       int64
	windowStart atomic.Int64 // unix nanos
}

// NewThroughputTracker creates a tracker with the window starting now
func NewThroughputTracker() *ThroughputTracker {
	t := &ThroughputTracker{}
	t.windowStart.Store(time.Now().UnixNano())
	return t
}

// Increment adds processed rows to the current window
func (t *ThroughputTracker) Increment(n int64) {
	atomic.AddInt64(&t.count, n)
}

// GetAndReset returns the rows-per-second over the current window and
// starts a new one
func (t *ThroughputTracker) GetAndReset() float64 {
	now := time.Now().UnixNano()
	start := t.windowStart.Swap(now)
	count := atomic.SwapInt64(&t.count, 0)

	elapsed := time.Duration(now - start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed
}
