package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
)

const (
	defaultProcessName      = "PathOfExileSteam.exe"
	defaultWindowTitle      = "Path of Exile 2"
	defaultPollInterval     = 50 * time.Millisecond
	defaultReattachInterval = 2 * time.Second
	defaultKeyBlockDuration = 2 * time.Second

	// Samples at or above this are assumed to be a stale pointer reading
	// garbage, not a real resource value.
	defaultGarbageCeiling = 20000
)

// blockedKeys are suppressed system-wide after a panic so the user's own
// key-mashing cannot cancel the escape the bot just sent.
var blockedKeys = []ports.Key{ports.KeyEscape, ports.KeySpace}

type MonitorConfig struct {
	ProcessName      string
	WindowTitle      string
	PollInterval     time.Duration
	ReattachInterval time.Duration
	KeyBlockDuration time.Duration
	GarbageCeiling   int64
}

func (c *MonitorConfig) applyDefaults() {
	if c.ProcessName == "" {
		c.ProcessName = defaultProcessName
	}
	if c.WindowTitle == "" {
		c.WindowTitle = defaultWindowTitle
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.ReattachInterval <= 0 {
		c.ReattachInterval = defaultReattachInterval
	}
	if c.KeyBlockDuration <= 0 {
		c.KeyBlockDuration = defaultKeyBlockDuration
	}
	if c.GarbageCeiling <= 0 {
		c.GarbageCeiling = defaultGarbageCeiling
	}
}

// Monitor owns the polling loop that watches one resource value and fires
// the escape action when it drops below the threshold. At most one session
// runs at a time; Start while running is a no-op and Stop cancels
// cooperatively within one poll interval.
type Monitor struct {
	cfg       MonitorConfig
	resources ports.ResourceRepository
	opener    ports.ProcessOpener
	windows   ports.WindowController
	keys      ports.KeyBlocker
	sink      ports.DisplaySink
	clock     ports.Clock
	log       *slog.Logger

	running atomic.Bool
	startMu sync.Mutex
	stopMu  sync.Mutex
	done    chan struct{}
}

// session is the state of one monitoring run. It is owned by the polling
// goroutine and dies with it; nothing in here survives a Stop.
type session struct {
	spec      domain.ResourceSpec
	threshold int64
	state     domain.Session
	proc      ports.ProcessHandle
	win       ports.WindowHandle
	pointer   uint64
}

func NewMonitor(
	cfg MonitorConfig,
	resources ports.ResourceRepository,
	opener ports.ProcessOpener,
	windows ports.WindowController,
	keys ports.KeyBlocker,
	sink ports.DisplaySink,
	clock ports.Clock,
	log *slog.Logger,
) *Monitor {
	cfg.applyDefaults()
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Monitor{
		cfg:       cfg,
		resources: resources,
		opener:    opener,
		windows:   windows,
		keys:      keys,
		sink:      sink,
		clock:     clock,
		log:       log,
	}
}

func (m *Monitor) Running() bool {
	return m.running.Load()
}

// Start attaches to the backend and spawns the polling loop. If a session
// is already running it does nothing. On attach failure the error has
// already been reported to the display sink and the monitor stays idle.
func (m *Monitor) Start(ctx context.Context) error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.running.Load() {
		return nil
	}

	// A stopped loop can still be parked in its ticker select. Wait for
	// it before spawning a new one so two loops never poll at once.
	if m.done != nil {
		<-m.done
	}

	sess, err := m.newSession(ctx)
	if err != nil {
		return err
	}

	m.sink.ReportStatus("Running...", ports.SeverityInfo)
	m.done = make(chan struct{})
	m.running.Store(true)
	go m.run(ctx, sess)

	return nil
}

// Stop requests cooperative termination, clears the published escape
// status and releases any blocked keys. Safe to call at any time, from any
// goroutine, repeatedly.
func (m *Monitor) Stop() {
	m.stopMu.Lock()
	defer m.stopMu.Unlock()

	m.releaseKeys()
	m.sink.SetEscaped(false)
	if !m.running.CompareAndSwap(true, false) {
		return
	}
	m.sink.ReportStatus("Monitor stopped", ports.SeverityInfo)
}

// Done returns a channel closed when the polling loop has exited. Only
// valid after a successful Start.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

func (m *Monitor) newSession(ctx context.Context) (*session, error) {
	key := m.sink.SelectedResource()
	spec, err := m.resources.Get(ctx, key)
	if err != nil {
		m.sink.ReportStatus(fmt.Sprintf("No pointer chain configured for %s", key.Label()), ports.SeverityError)
		return nil, fmt.Errorf("resource spec for %q: %w", key, err)
	}

	sess := &session{
		spec:      spec,
		threshold: parseThreshold(m.sink.ThresholdText(), spec.Threshold),
	}
	sess.state.LastAttach = m.clock.Now()

	if err := m.attach(sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (m *Monitor) run(ctx context.Context, sess *session) {
	defer close(m.done)
	defer func() {
		if sess.proc != nil {
			_ = sess.proc.Close()
		}
	}()

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for m.running.Load() {
		if !m.tick(sess) {
			m.Stop()
			return
		}
		select {
		case <-ctx.Done():
			m.Stop()
			return
		case <-ticker.C:
		}
	}
}

// tick executes one poll iteration. It returns false only on the
// session-fatal case: the panic key could not be delivered, so no further
// safety action is possible.
func (m *Monitor) tick(sess *session) bool {
	value := m.sample(sess)

	switch sess.state.Decide(value, sess.threshold) {
	case domain.DecidePanic:
		if err := m.deliverPanic(sess); err != nil {
			m.log.Error("panic delivery failed", "error", err)
			m.sink.ReportStatus("Game window not found!", ports.SeverityError)
			return false
		}
		sess.state.Escaped = true
		m.log.Info("value below threshold, escape sent",
			"resource", sess.spec.Key, "value", value, "threshold", sess.threshold)
	case domain.DecideReset:
		sess.state.Escaped = false
		m.log.Debug("value back above threshold, escape reset", "value", value)
	}

	m.sink.SetCurrentValue(sess.spec.Key, value)
	m.sink.SetEscaped(sess.state.Escaped)

	now := m.clock.Now()
	if sess.state.ShouldReattach(value, m.cfg.GarbageCeiling, now, m.cfg.ReattachInterval) {
		sess.state.LastAttach = now
		m.log.Debug("waiting for memory data, reattaching", "value", value)
		if err := m.attach(sess); err != nil {
			// Keep the previous pointer and keep polling; the next window
			// retries.
			m.log.Debug("reattach failed", "error", err)
		}
	}

	return true
}

// sample reads the resource value at the resolved pointer. Any failure is
// absorbed as 0: a stale pointer is expected while the target is loading
// or restarting, and 0 doubles as the reattach trigger.
func (m *Monitor) sample(sess *session) int64 {
	if sess.proc == nil {
		return 0
	}
	value, err := sess.proc.ReadInt32(sess.pointer)
	if err != nil {
		return 0
	}
	return int64(value)
}

// attach (re)establishes the process handle, window handle and resolved
// pointer. Process and window lookups must both succeed; pointer
// resolution always yields an address, meaningful or not, and it is stored
// regardless.
func (m *Monitor) attach(sess *session) error {
	proc, err := m.opener.Open(m.cfg.ProcessName)
	if err != nil {
		m.sink.ReportStatus(fmt.Sprintf("%s is not running", m.cfg.ProcessName), ports.SeverityError)
		return fmt.Errorf("open process %s: %w", m.cfg.ProcessName, err)
	}

	win, err := m.windows.Find(m.cfg.WindowTitle)
	if err != nil {
		_ = proc.Close()
		m.sink.ReportStatus("Cannot find game window!", ports.SeverityError)
		return fmt.Errorf("find window %q: %w", m.cfg.WindowTitle, err)
	}

	if sess.proc != nil {
		_ = sess.proc.Close()
	}
	sess.proc = proc
	sess.win = win

	base, err := proc.ModuleBase(m.cfg.ProcessName)
	if err != nil {
		// Keep the previous pointer; the attach still counts as a success
		// and the next reattach window retries the resolution.
		m.log.Warn("module base lookup failed", "module", m.cfg.ProcessName, "error", err)
		return nil
	}
	sess.pointer = ResolvePointer(proc, base, sess.spec)

	return nil
}

func (m *Monitor) deliverPanic(sess *session) error {
	if err := m.windows.PostKeyDown(sess.win, ports.KeyEscape); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPanicDelivery, err)
	}
	m.blockKeys()
	return nil
}

func (m *Monitor) blockKeys() {
	for _, key := range blockedKeys {
		if err := m.keys.Block(key); err != nil {
			m.log.Warn("block key", "key", key, "error", err)
		}
	}
	time.AfterFunc(m.cfg.KeyBlockDuration, m.releaseKeys)
}

func (m *Monitor) releaseKeys() {
	for _, key := range blockedKeys {
		m.keys.Unblock(key)
	}
}

func parseThreshold(text string, fallback int64) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
