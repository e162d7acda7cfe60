package server

import (
	"log/slog"
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// Monitor keeps ConsoleService stats.
type Monitor struct {
	sync.Mutex
	logger     *slog.Logger
	period     time.Duration
	rpcHandled int
	rpcFailed  int
	rpcReqDur  *movingaverage.MovingAverage
	stopCh     chan struct{}
}

// RPCServed updates the RPC handling rate and duration metrics.
func (m *Monitor) RPCServed(dur time.Duration, failed bool) {
	m.Lock()
	defer m.Unlock()

	m.rpcReqDur.Add(float64(dur/time.Microsecond) / 1000.0)
	m.rpcHandled++
	if failed {
		m.rpcFailed++
	}
}

// AvgDuration returns the moving average RPC duration in milliseconds.
func (m *Monitor) AvgDuration() float64 {
	m.Lock()
	defer m.Unlock()

	return m.rpcReqDur.Avg()
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

			rpcPerSec := float64(m.rpcHandled) / m.period.Seconds()
			m.logger.Info("Monitor",
				"rpc_per_sec", rpcPerSec,
				"rpc_failed", m.rpcFailed,
				"rpc_dur_ms", m.rpcReqDur.Avg(),
			)
			m.rpcHandled = 0
			m.rpcFailed = 0

			m.Unlock()
		}
	}
}

// NewMonitor creates a new Monitor reporting every period.
func NewMonitor(logger *slog.Logger, period time.Duration) *Monitor {
	if period <= 0 {
		period = 5 * time.Second
	}

	return &Monitor{
		logger:    logger,
		period:    period,
		rpcReqDur: movingaverage.New(5),
	}
}
