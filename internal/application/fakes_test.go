package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
)

var errUnmapped = errors.New("address not mapped")

type fakeProcess struct {
	mu         sync.Mutex
	moduleBase uint64
	pointers   map[uint64]uint64
	values     map[uint64]int32
	closed     bool
}

func newFakeProcess(moduleBase uint64) *fakeProcess {
	return &fakeProcess{
		moduleBase: moduleBase,
		pointers:   map[uint64]uint64{},
		values:     map[uint64]int32{},
	}
}

func (p *fakeProcess) ModuleBase(string) (uint64, error) {
	return p.moduleBase, nil
}

func (p *fakeProcess) ReadPointer(addr uint64) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok := p.pointers[addr]
	if !ok {
		return 0, fmt.Errorf("%w: %#x", errUnmapped, addr)
	}
	return value, nil
}

func (p *fakeProcess) ReadInt32(addr uint64) (int32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok := p.values[addr]
	if !ok {
		return 0, fmt.Errorf("%w: %#x", errUnmapped, addr)
	}
	return value, nil
}

func (p *fakeProcess) setValue(addr uint64, value int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[addr] = value
}

func (p *fakeProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

type fakeOpener struct {
	mu    sync.Mutex
	proc  ports.ProcessHandle
	err   error
	opens int
}

func (o *fakeOpener) Open(string) (ports.ProcessHandle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opens++
	if o.err != nil {
		return nil, o.err
	}
	return o.proc, nil
}

func (o *fakeOpener) openCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens
}

type fakeWindows struct {
	mu      sync.Mutex
	win     ports.WindowHandle
	findErr error
	postErr error
	posted  []ports.Key
}

func (w *fakeWindows) Find(string) (ports.WindowHandle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.findErr != nil {
		return 0, w.findErr
	}
	return w.win, nil
}

func (w *fakeWindows) PostKeyDown(_ ports.WindowHandle, key ports.Key) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.postErr != nil {
		return w.postErr
	}
	w.posted = append(w.posted, key)
	return nil
}

func (w *fakeWindows) postedKeys() []ports.Key {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]ports.Key(nil), w.posted...)
}

type fakeBlocker struct {
	mu      sync.Mutex
	blocked map[ports.Key]bool
}

func newFakeBlocker() *fakeBlocker {
	return &fakeBlocker{blocked: map[ports.Key]bool{}}
}

func (b *fakeBlocker) Block(key ports.Key) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blocked[key] = true
	return nil
}

func (b *fakeBlocker) Unblock(key ports.Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.blocked, key)
}

func (b *fakeBlocker) isBlocked(key ports.Key) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blocked[key]
}

type statusEntry struct {
	msg      string
	severity ports.Severity
}

type fakeSink struct {
	mu            sync.Mutex
	selected      domain.ResourceKey
	thresholdText string
	values        []int64
	escapes       []bool
	statuses      []statusEntry
}

func newFakeSink(selected domain.ResourceKey, thresholdText string) *fakeSink {
	return &fakeSink{selected: selected, thresholdText: thresholdText}
}

func (s *fakeSink) SelectedResource() domain.ResourceKey {
	return s.selected
}

func (s *fakeSink) ThresholdText() string {
	return s.thresholdText
}

func (s *fakeSink) SetCurrentValue(_ domain.ResourceKey, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, value)
}

func (s *fakeSink) SetEscaped(escaped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.escapes = append(s.escapes, escaped)
}

func (s *fakeSink) ReportStatus(msg string, severity ports.Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, statusEntry{msg: msg, severity: severity})
}

func (s *fakeSink) valueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func (s *fakeSink) lastEscape() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.escapes) == 0 {
		return false
	}
	return s.escapes[len(s.escapes)-1]
}

func (s *fakeSink) escapeHistory() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.escapes...)
}

func (s *fakeSink) statusMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]string, 0, len(s.statuses))
	for _, entry := range s.statuses {
		msgs = append(msgs, entry.msg)
	}
	return msgs
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeRepo struct {
	specs map[domain.ResourceKey]domain.ResourceSpec
	err   error
}

func newFakeRepo(specs ...domain.ResourceSpec) *fakeRepo {
	repo := &fakeRepo{specs: map[domain.ResourceKey]domain.ResourceSpec{}}
	for _, spec := range specs {
		repo.specs[spec.Key] = spec
	}
	return repo
}

func (r *fakeRepo) Get(_ context.Context, key domain.ResourceKey) (domain.ResourceSpec, error) {
	if r.err != nil {
		return domain.ResourceSpec{}, r.err
	}
	spec, ok := r.specs[key]
	if !ok {
		return domain.ResourceSpec{}, domain.ErrUnknownResource
	}
	return spec, nil
}

func (r *fakeRepo) List(context.Context) ([]domain.ResourceSpec, error) {
	if r.err != nil {
		return nil, r.err
	}
	specs := make([]domain.ResourceSpec, 0, len(r.specs))
	for _, key := range domain.Keys() {
		if spec, ok := r.specs[key]; ok {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

func (r *fakeRepo) Save(_ context.Context, spec domain.ResourceSpec) error {
	r.specs[spec.Key] = spec
	return nil
}
