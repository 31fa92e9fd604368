package mine

import (
	"time"

	"go.uber.org/zap"
)

// Option to configure a Miner
type Option func(*Miner)

// Workers sets the number of parallel search workers.
// The default is the number of logical CPUs.
func Workers(n int) Option {
	return func(m *Miner) {
		m.workers = n
	}
}

// BatchSize sets how many attempts a worker performs between
// cancellation checks. Larger batches lower coordination overhead at
// the price of up to one batch of extra work past the winner.
func BatchSize(n int) Option {
	return func(m *Miner) {
		if n > 0 {
			m.batchSize = n
		}
	}
}

// StatusEvery sets the interval for throughput log lines. Zero disables
// the status monitor.
func StatusEvery(interval time.Duration) Option {
	return func(m *Miner) {
		m.statusEvery = interval
	}
}

// Logger sets a logger for this miner
func Logger(l *zap.Logger) Option {
	return func(m *Miner) {
		if l != nil {
			m.l = l
		}
	}
}
