package common

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/message"
)

// Phase names a timed section of a run.
type Phase string

const (
	PhaseCompute Phase = "compute"
	PhaseWrite   Phase = "write"
)

type span struct {
	start time.Time
	end   time.Time
}

// Metrics records wall-clock spans per phase and output counters.
type Metrics struct {
	mu    sync.Mutex
	now   func() time.Time
	spans map[Phase]span
	rows  int64
	bytes int64
}

func NewMetrics() *Metrics {
	return &Metrics{now: time.Now, spans: make(map[Phase]span)}
}

func (m *Metrics) Start(p Phase) {
	m.mu.Lock()
	m.spans[p] = span{start: m.now()}
	m.mu.Unlock()
}

func (m *Metrics) Stop(p Phase) {
	m.mu.Lock()
	if s, ok := m.spans[p]; ok && s.end.IsZero() {
		s.end = m.now()
		m.spans[p] = s
	}
	m.mu.Unlock()
}

// Elapsed returns the span of p; a running phase reports time so far.
func (m *Metrics) Elapsed(p Phase) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsedLocked(p)
}

func (m *Metrics) elapsedLocked(p Phase) time.Duration {
	s, ok := m.spans[p]
	if !ok || s.start.IsZero() {
		return 0
	}
	if !s.end.IsZero() {
		return s.end.Sub(s.start)
	}
	return m.now().Sub(s.start)
}

func (m *Metrics) AddRows(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	m.rows += int64(n)
	m.mu.Unlock()
}

func (m *Metrics) AddBytes(n int64) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	m.bytes += n
	m.mu.Unlock()
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Compute: m.elapsedLocked(PhaseCompute),
		Write:   m.elapsedLocked(PhaseWrite),
		Rows:    m.rows,
		Bytes:   m.bytes,
	}
}

type MetricsSnapshot struct {
	Compute time.Duration
	Write   time.Duration
	Rows    int64
	Bytes   int64
}

// TimingLine is the one-line summary printed after a run.
func (s MetricsSnapshot) TimingLine() string {
	return FormatTimingLine(s.Compute, s.Write)
}

func (s MetricsSnapshot) ThroughputBytesPerSecond() float64 {
	if s.Write <= 0 {
		return 0
	}
	return float64(s.Bytes) / s.Write.Seconds()
}

func FormatTimingLine(compute, write time.Duration) string {
	return fmt.Sprintf("It took %.3f seconds to compute the gray code and %.3f seconds to write the results",
		compute.Seconds(), write.Seconds())
}

var countPrinter = message.NewPrinter(message.MatchLanguage("en"))

// FormatCount renders n with thousands grouping, e.g. 59,049.
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div := float64(unit)
	exp := 0
	for n := float64(b) / div; n >= unit && exp < 6; n /= unit {
		div *= unit
		exp++
	}
	prefixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.2f %s", float64(b)/div, prefixes[exp])
}
