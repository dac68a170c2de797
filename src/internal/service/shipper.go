// FILE: src/internal/service/shipper.go
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"hecship/src/internal/config"
	"hecship/src/internal/core"
	"hecship/src/internal/format"
	"hecship/src/internal/forwarder"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// QueuedRecord pairs a record with the envelope overrides it should
// ship with. A zero Overrides means forwarder defaults throughout; the
// record's own time fills the envelope time when no override is set.
type QueuedRecord struct {
	Record    core.Record
	Overrides forwarder.Overrides
}

// Shipper decouples record producers from the blocking forward call:
// a buffered queue feeds one consumer goroutine that formats and
// forwards records serially. The forwarder itself stays synchronous.
type Shipper struct {
	// Application
	input     chan QueuedRecord
	fwd       *forwarder.Forwarder
	formatter format.Formatter
	limiter   *rate.Limiter
	logger    *log.Logger

	// Runtime
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time

	// Statistics
	totalShipped  atomic.Uint64
	failedEvents  atomic.Uint64
	droppedEvents atomic.Uint64
	lastShipped   atomic.Value // time.Time
}

// ShipperStats contains statistics about a shipper
type ShipperStats struct {
	TotalShipped  uint64
	FailedEvents  uint64
	DroppedEvents uint64
	QueuedEvents  int
	StartTime     time.Time
	LastShipped   time.Time
}

// NewShipper creates a new shipper around the given forwarder.
func NewShipper(cfg config.ShipperConfig, fwd *forwarder.Forwarder, formatter format.Formatter, logger *log.Logger) *Shipper {
	bufferSize := cfg.BufferSize
	if bufferSize < 1 {
		bufferSize = 1000
	}

	s := &Shipper{
		input:     make(chan QueuedRecord, bufferSize),
		fwd:       fwd,
		formatter: formatter,
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
	}
	s.lastShipped.Store(time.Time{})

	if cfg.RateLimit > 0 {
		burst := int(cfg.RateBurst)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return s
}

// Submit queues a record with its envelope overrides for forwarding.
// Records are dropped when the queue is full so a slow collector never
// stalls the producer.
func (s *Shipper) Submit(rec core.Record, ov forwarder.Overrides) bool {
	select {
	case s.input <- QueuedRecord{Record: rec, Overrides: ov}:
		return true
	default:
		s.droppedEvents.Add(1)
		s.logger.Debug("msg", "Dropped record - ship queue full",
			"component", "shipper")
		return false
	}
}

// Input returns the channel for sending records to this shipper.
func (s *Shipper) Input() chan<- QueuedRecord {
	return s.input
}

// Start begins the consumer loop.
func (s *Shipper) Start(ctx context.Context) error {
	s.wg.Add(1)
	go s.processLoop(ctx)

	s.logger.Info("msg", "Shipper started",
		"component", "shipper",
		"buffer_size", cap(s.input),
		"rate_limited", s.limiter != nil)
	return nil
}

// Stop gracefully shuts down the shipper, forwarding any queued records.
func (s *Shipper) Stop() {
	s.logger.Info("msg", "Stopping shipper")
	close(s.done)
	s.wg.Wait()

	// Flush whatever is still queued
	for {
		select {
		case q := <-s.input:
			s.ship(q)
		default:
			s.logger.Info("msg", "Shipper stopped",
				"total_shipped", s.totalShipped.Load(),
				"failed_events", s.failedEvents.Load(),
				"dropped_events", s.droppedEvents.Load())
			return
		}
	}
}

// GetStats returns the shipper's statistics.
func (s *Shipper) GetStats() ShipperStats {
	lastShipped, _ := s.lastShipped.Load().(time.Time)

	return ShipperStats{
		TotalShipped:  s.totalShipped.Load(),
		FailedEvents:  s.failedEvents.Load(),
		DroppedEvents: s.droppedEvents.Load(),
		QueuedEvents:  len(s.input),
		StartTime:     s.startTime,
		LastShipped:   lastShipped,
	}
}

// processLoop drains the queue and forwards records one at a time.
func (s *Shipper) processLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case q, ok := <-s.input:
			if !ok {
				return
			}

			if s.limiter != nil {
				if err := s.limiter.Wait(ctx); err != nil {
					return
				}
			}

			s.ship(q)

		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

// ship formats one record and forwards it, counting failures. Delivery
// failures are logged and absorbed here; shipping is best effort.
func (s *Shipper) ship(q QueuedRecord) {
	event, err := format.Event(s.formatter, q.Record)
	if err != nil {
		s.failedEvents.Add(1)
		s.logger.Error("msg", "Failed to format record",
			"component", "shipper",
			"error", err)
		return
	}

	ov := q.Overrides
	if ov.Time == nil && !q.Record.Time.IsZero() {
		t := q.Record.Time
		ov.Time = &t
	}

	if err := s.fwd.Forward(event, ov); err != nil {
		s.failedEvents.Add(1)
		s.logger.Error("msg", "Failed to forward record",
			"component", "shipper",
			"error", err)
		return
	}

	s.totalShipped.Add(1)
	s.lastShipped.Store(time.Now())
}
