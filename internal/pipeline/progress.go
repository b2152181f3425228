package pipeline

import (
	"time"

	"go.uber.org/zap"
)

// progressReporter logs emission progress inline from the row loop, at
// most once per interval. The emission phase is single-threaded, so no
// background ticker goroutine is involved.
type progressReporter struct {
	logger   *zap.Logger
	total    int
	done     int
	interval time.Duration
	start    time.Time
	last     time.Time
}

func newProgressReporter(logger *zap.Logger, total int, interval time.Duration) *progressReporter {
	now := time.Now()
	return &progressReporter{
		logger:   logger,
		total:    total,
		interval: interval,
		start:    now,
		last:     now,
	}
}

// increment counts one emitted row and maybe logs a progress line
func (p *progressReporter) increment() {
	p.done++
	if p.interval <= 0 {
		return
	}

	now := time.Now()
	if now.Sub(p.last) < p.interval {
		return
	}
	p.last = now

	elapsed := now.Sub(p.start)
	p.logger.Info("conversion progress",
		zap.Int("rows_done", p.done),
		zap.Int("rows_total", p.total),
		zap.Int("percent", p.percent()),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rows_per_second", p.rate(elapsed)))
}

// finish logs the final progress line
func (p *progressReporter) finish() {
	elapsed := time.Since(p.start)
	p.logger.Info("conversion complete",
		zap.Int("rows_written", p.done),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rows_per_second", p.rate(elapsed)))
}

func (p *progressReporter) percent() int {
	if p.total <= 0 {
		return 100
	}
	return p.done * 100 / p.total
}

func (p *progressReporter) rate(elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(p.done) / secs
}
