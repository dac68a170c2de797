// FILE: src/internal/source/stdin.go
package source

import (
	"bufio"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"hecship/src/internal/core"

	"github.com/lixenwraith/log"
)

// Reads log records from standard input, one per line
type StdinSource struct {
	reader        io.Reader
	subscribers   []chan core.Record
	done          chan struct{}
	eof           chan struct{}
	stopOnce      sync.Once
	totalEntries  atomic.Uint64
	droppedLines  atomic.Uint64
	bufferSize    int64
	startTime     time.Time
	lastEntryTime atomic.Value // time.Time
	logger        *log.Logger
}

func NewStdinSource(bufferSize int64, logger *log.Logger) (*StdinSource, error) {
	if bufferSize < 1 {
		bufferSize = 1000
	}

	source := &StdinSource{
		reader:      os.Stdin,
		bufferSize:  bufferSize,
		subscribers: make([]chan core.Record, 0),
		done:        make(chan struct{}),
		eof:         make(chan struct{}),
		logger:      logger,
		startTime:   time.Now(),
	}
	source.lastEntryTime.Store(time.Time{})
	return source, nil
}

func (s *StdinSource) Subscribe() <-chan core.Record {
	ch := make(chan core.Record, s.bufferSize)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *StdinSource) Start() error {
	go s.readLoop()
	s.logger.Info("msg", "Stdin source started", "component", "stdin_source")
	return nil
}

// Stop signals the read loop to exit. Subscriber channels are closed by
// the read loop itself so a record already in flight can never hit a
// closed channel.
func (s *StdinSource) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.logger.Info("msg", "Stdin source stopped", "component", "stdin_source")
}

func (s *StdinSource) GetStats() SourceStats {
	lastEntry, _ := s.lastEntryTime.Load().(time.Time)

	return SourceStats{
		Type:           "stdin",
		TotalEntries:   s.totalEntries.Load(),
		DroppedEntries: s.droppedLines.Load(),
		StartTime:      s.startTime,
		LastEntryTime:  lastEntry,
	}
}

// Done is closed when stdin reaches EOF, so piped input can trigger a
// clean shutdown once everything has been read.
func (s *StdinSource) Done() <-chan struct{} {
	return s.eof
}

func (s *StdinSource) readLoop() {
	// Only the sender closes subscriber channels
	defer func() {
		close(s.eof)
		for _, ch := range s.subscribers {
			close(ch)
		}
	}()

	scanner := bufio.NewScanner(s.reader)
	for scanner.Scan() {
		select {
		case <-s.done:
			return
		default:
			line := scanner.Text()
			if line == "" {
				continue
			}

			rec := core.NewRecord(time.Now(), "stdin", extractLogLevel(line), line)
			s.publish(rec)
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Error("msg", "Scanner error reading stdin",
			"component", "stdin_source",
			"error", err)
	}
}

func (s *StdinSource) publish(rec core.Record) {
	s.totalEntries.Add(1)
	s.lastEntryTime.Store(rec.Time)

	for _, ch := range s.subscribers {
		select {
		case ch <- rec:
		default:
			s.droppedLines.Add(1)
			s.logger.Debug("msg", "Dropped record - subscriber buffer full",
				"component", "stdin_source")
		}
	}
}
