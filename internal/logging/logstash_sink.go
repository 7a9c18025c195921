package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// LogstashSink forwards encoded zap entries to a Logstash TCP input. The
// dial runs outside the sink lock, so only the goroutine that triggers a
// reconnect waits on it (up to the dial timeout); concurrent writes drop
// their entry meanwhile. A write on an open connection holds the lock for at
// most the write timeout. While Logstash is unreachable entries are dropped
// until the next retry window.
type LogstashSink struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration
	dial          func(network, addr string, timeout time.Duration) (net.Conn, error)

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	dialing   bool
	closed    bool
	dropped   int
}

type SinkOption func(*LogstashSink)

func WithDialTimeout(d time.Duration) SinkOption {
	return func(s *LogstashSink) { s.dialTimeout = d }
}

func WithWriteTimeout(d time.Duration) SinkOption {
	return func(s *LogstashSink) { s.writeTimeout = d }
}

// WithRetryInterval sets the cool-down after a failed dial or write. Defaults to 5s.
func WithRetryInterval(d time.Duration) SinkOption {
	return func(s *LogstashSink) { s.retryInterval = d }
}

func NewLogstashSink(addr string, opts ...SinkOption) (*LogstashSink, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}
	s := &LogstashSink{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		dial:          net.DialTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Write implements zapcore.WriteSyncer. It reports the full payload as written
// even when the entry was dropped so zap never marks the core as broken.
func (s *LogstashSink) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, io.ErrClosedPipe
	}
	if err := s.connectLocked(); err != nil {
		s.dropped++
		return len(p), nil
	}
	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if _, err := s.conn.Write(line); err != nil {
		s.dropped++
		s.resetLocked()
		s.backoffLocked()
	}
	return len(p), nil
}

// Sync is a no-op; entries are flushed on every Write.
func (s *LogstashSink) Sync() error { return nil }

// Dropped reports how many entries were discarded while Logstash was unavailable.
func (s *LogstashSink) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func (s *LogstashSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.resetLocked()
}

// connectLocked is called with s.mu held and returns with it held, but
// releases it around the dial.
func (s *LogstashSink) connectLocked() error {
	if s.conn != nil {
		return nil
	}
	if s.dialing {
		return errDialInProgress
	}
	if !s.nextRetry.IsZero() && time.Now().Before(s.nextRetry) {
		return errRetryCooldown
	}

	s.dialing = true
	s.mu.Unlock()
	conn, err := s.dial("tcp", s.addr, s.dialTimeout)
	s.mu.Lock()
	s.dialing = false

	if err != nil {
		s.backoffLocked()
		return err
	}
	if s.closed {
		conn.Close()
		return io.ErrClosedPipe
	}
	s.conn = conn
	s.nextRetry = time.Time{}
	return nil
}

func (s *LogstashSink) resetLocked() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *LogstashSink) backoffLocked() {
	if s.retryInterval <= 0 {
		s.nextRetry = time.Time{}
		return
	}
	s.nextRetry = time.Now().Add(s.retryInterval)
}

var (
	errRetryCooldown  = errors.New("logstash: retry cooldown in effect")
	errDialInProgress = errors.New("logstash: dial in progress")
)
