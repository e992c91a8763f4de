// Package poller keeps the navigation badge counts of each signed-in session
// fresh by re-fetching them on a fixed interval.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	CounterTableOrders    = "tableOrders"
	CounterDeliveryOrders = "deliveryOrders"
	CounterReservations   = "reservations"
	CounterMessages       = "messages"
)

// Counter is one badge. Fetch is called with the subscription's context.
type Counter struct {
	Name  string
	Fetch func(ctx context.Context) (int64, error)
}

// CountSource is what the badge counters read from.
type CountSource interface {
	CountTableOrders(ctx context.Context) (int64, error)
	CountDeliveryOrders(ctx context.Context) (int64, error)
	CountReservations(ctx context.Context) (int64, error)
	CountMessages(ctx context.Context) (int64, error)
}

// BadgeCounters returns the four navigation counters of a store.
func BadgeCounters(src CountSource) []Counter {
	return []Counter{
		{Name: CounterTableOrders, Fetch: src.CountTableOrders},
		{Name: CounterDeliveryOrders, Fetch: src.CountDeliveryOrders},
		{Name: CounterReservations, Fetch: src.CountReservations},
		{Name: CounterMessages, Fetch: src.CountMessages},
	}
}

type Snapshot struct {
	Counts    map[string]int64  `json:"counts"`
	Errors    map[string]string `json:"errors,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

var ErrStopped = errors.New("poller durduruldu")

// IdleIntervals is how many intervals a subscription may run with no open
// Watch and no Snapshot call before it stops itself.
const IdleIntervals = 5

type Option func(*Manager)

// WithIdle overrides the idle stop delay. Zero or less disables it.
func WithIdle(d time.Duration) Option {
	return func(m *Manager) { m.idle = d }
}

type Manager struct {
	sched    gocron.Scheduler
	interval time.Duration
	idle     time.Duration

	mu   sync.Mutex
	subs map[string]*Subscription
}

func NewManager(interval time.Duration, opts ...Option) (*Manager, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("geçersiz poll aralığı: %s", interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler oluşturulamadı: %w", err)
	}
	m := &Manager{sched: s, interval: interval, idle: IdleIntervals * interval, subs: make(map[string]*Subscription)}
	for _, opt := range opts {
		opt(m)
	}
	s.Start()
	return m, nil
}

// Subscribe returns the live subscription for key, or starts one: every counter
// is fetched right away and then every interval until Stop, ttl or the idle
// delay passes with nobody reading it.
func (m *Manager) Subscribe(key string, counters []Counter, ttl time.Duration) (*Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub, ok := m.subs[key]; ok && !sub.Stopped() {
		return sub, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{
		key:      key,
		m:        m,
		counters: counters,
		ctx:      ctx,
		cancel:   cancel,
		counts:   make(map[string]int64, len(counters)),
		errs:     make(map[string]string),
		issued:   make(map[string]uint64, len(counters)),
		applied:  make(map[string]uint64, len(counters)),
		watchers: make(map[chan Snapshot]struct{}),
		lastSeen: time.Now(),
	}

	job, err := m.sched.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(sub.tick),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags(key),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("poll işi eklenemedi: %w", err)
	}
	sub.job = job

	if ttl > 0 {
		sub.timer = time.AfterFunc(ttl, sub.Stop)
	}
	m.subs[key] = sub

	sub.refresh()
	return sub, nil
}

func (m *Manager) Get(key string) (*Subscription, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[key]
	if !ok || sub.Stopped() {
		return nil, false
	}
	return sub, true
}

// Stop ends the subscription for key, if any.
func (m *Manager) Stop(key string) {
	m.mu.Lock()
	sub := m.subs[key]
	m.mu.Unlock()
	if sub != nil {
		sub.Stop()
	}
}

// Shutdown stops every subscription and the scheduler.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	subs := make([]*Subscription, 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	for _, s := range subs {
		s.Stop()
	}
	return m.sched.Shutdown()
}

func (m *Manager) forget(sub *Subscription) {
	m.mu.Lock()
	if m.subs[sub.key] == sub {
		delete(m.subs, sub.key)
	}
	m.mu.Unlock()

	if sub.job != nil {
		if err := m.sched.RemoveJob(sub.job.ID()); err != nil && !errors.Is(err, gocron.ErrJobNotFound) {
			log.Printf("[POLL] iş kaldırılamadı (%s): %v", sub.key, err)
		}
	}
}

type Subscription struct {
	key      string
	m        *Manager
	counters []Counter
	job      gocron.Job
	timer    *time.Timer

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	stopped   bool
	counts    map[string]int64
	errs      map[string]string
	issued    map[string]uint64
	applied   map[string]uint64
	updatedAt time.Time
	watchers  map[chan Snapshot]struct{}
	lastSeen  time.Time
}

func (s *Subscription) Key() string { return s.key }

func (s *Subscription) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// tick is the scheduled run. A subscription nobody has read for the idle
// delay stops instead of fetching.
func (s *Subscription) tick() {
	if s.idle() {
		log.Printf("[POLL] %s boşta kaldı, durduruluyor", s.key)
		s.Stop()
		return
	}
	s.refresh()
}

func (s *Subscription) idle() bool {
	if s.m.idle <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers) == 0 && time.Since(s.lastSeen) > s.m.idle
}

// refresh starts one fetch per counter; each result is applied independently.
func (s *Subscription) refresh() {
	for _, c := range s.counters {
		seq, ok := s.issue(c.Name)
		if !ok {
			return
		}
		go func(c Counter, seq uint64) {
			n, err := c.Fetch(s.ctx)
			s.apply(c.Name, seq, n, err)
		}(c, seq)
	}
}

func (s *Subscription) issue(name string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return 0, false
	}
	s.issued[name]++
	return s.issued[name], true
}

// apply records a fetch result unless the subscription is gone or a later
// fetch of the same counter has already been applied. A failure keeps the
// previous count.
func (s *Subscription) apply(name string, seq uint64, n int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || seq <= s.applied[name] {
		return
	}
	s.applied[name] = seq

	if err != nil {
		s.errs[name] = err.Error()
		log.Printf("[POLL] %s sayacı alınamadı (%s): %v", name, s.key, err)
	} else {
		s.counts[name] = n
		delete(s.errs, name)
	}
	s.updatedAt = time.Now()

	snap := s.snapshotLocked()
	for ch := range s.watchers {
		offer(ch, snap)
	}
}

func (s *Subscription) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.snapshotLocked()
}

func (s *Subscription) snapshotLocked() Snapshot {
	snap := Snapshot{
		Counts:    make(map[string]int64, len(s.counters)),
		UpdatedAt: s.updatedAt,
	}
	for _, c := range s.counters {
		snap.Counts[c.Name] = s.counts[c.Name]
	}
	if len(s.errs) > 0 {
		snap.Errors = make(map[string]string, len(s.errs))
		for k, v := range s.errs {
			snap.Errors[k] = v
		}
	}
	return snap
}

// Watch streams snapshots. The channel starts with the current snapshot, keeps
// only the newest one if the reader falls behind and is closed on Stop.
// Call the returned func to stop watching.
func (s *Subscription) Watch() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	ch <- s.snapshotLocked()
	s.watchers[ch] = struct{}{}
	s.lastSeen = time.Now()
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
			s.lastSeen = time.Now()
		}
	}
}

// Stop removes the job, cancels in-flight fetches and closes watchers. Safe to
// call more than once.
func (s *Subscription) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	for ch := range s.watchers {
		close(ch)
	}
	s.watchers = map[chan Snapshot]struct{}{}
	s.mu.Unlock()

	s.cancel()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.m.forget(s)
}

func offer(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	// drop the stale one
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
