package client

import (
	"log/slog"
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// Monitor keeps Gateway stats.
type Monitor struct {
	sync.Mutex
	logger    *slog.Logger
	period    time.Duration
	callDur   *movingaverage.MovingAverage
	opCallDur map[string]*movingaverage.MovingAverage
	callsSent int
	callsFail int
	stopCh    chan struct{}
}

// CallServed records an RPC call.
func (m *Monitor) CallServed(op string, dur time.Duration, failed bool) {
	m.Lock()
	defer m.Unlock()

	durMs := float64(dur/time.Microsecond) / 1000.0
	m.callDur.Add(durMs)

	opDur, found := m.opCallDur[op]
	if !found {
		opDur = movingaverage.New(3)
		m.opCallDur[op] = opDur
	}
	opDur.Add(durMs)

	m.callsSent++
	if failed {
		m.callsFail++
	}
}

// AvgDuration returns the moving average call duration in milliseconds for op, empty op for all calls.
func (m *Monitor) AvgDuration(op string) float64 {
	m.Lock()
	defer m.Unlock()

	if op == "" {
		return m.callDur.Avg()
	}
	if opDur, found := m.opCallDur[op]; found {
		return opDur.Avg()
	}

	return 0
}

// Start starts the Monitor worker.
func (m *Monitor) Start() {
	if m.stopCh != nil {
		return
	}

	m.stopCh = make(chan struct{})
	go m.worker(m.stopCh)
}

// Stop stops the Monitor worker.
func (m *Monitor) Stop() {
	if m.stopCh == nil {
		return
	}

	close(m.stopCh)
	m.stopCh = nil
}

// worker does the actual job.
func (m *Monitor) worker(stopCh chan struct{}) {
	ticker := time.NewTicker(m.period)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			// Stop the monitor
			return
		case <-ticker.C:
			// Print the report
			m.Lock()

			callsPerSec := float64(m.callsSent) / m.period.Seconds()
			attrs := []any{
				"calls_per_sec", callsPerSec,
				"calls_failed", m.callsFail,
				"call_dur_ms", m.callDur.Avg(),
			}
			for op, opDur := range m.opCallDur {
				attrs = append(attrs, op+"_dur_ms", opDur.Avg())
			}
			m.logger.Info("Monitor", attrs...)
			m.callsSent = 0
			m.callsFail = 0

			m.Unlock()
		}
	}
}

// NewMonitor creates a new Monitor reporting every period.
func NewMonitor(logger *slog.Logger, period time.Duration) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	if period <= 0 {
		period = 5 * time.Second
	}

	return &Monitor{
		logger:    logger,
		period:    period,
		callDur:   movingaverage.New(5),
		opCallDur: make(map[string]*movingaverage.MovingAverage),
	}
}
