package mesh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"xr_archive/internal/domain/models"
	"xr_archive/internal/lib/logger/sl"
	"xr_archive/internal/metrics"
)

const DefaultSeedDelay = 2 * time.Second

var (
	ErrAlreadyConnected = errors.New("replication client already connected")
	ErrClosed           = errors.New("replication client is torn down")
	ErrEmptyID          = errors.New("record id is empty")
)

// Sink receives the decoded result of every change event, one at a time and
// in delivery order.
type Sink interface {
	Upsert(rec models.Record)
	Remove(id string)
}

type Option func(*Client)

// WithSeedDelay sets the grace period before the seed-once check.
func WithSeedDelay(d time.Duration) Option {
	return func(c *Client) {
		c.seedDelay = d
	}
}

// WithDefaults replaces the records written by the seed-once bootstrap.
func WithDefaults(records []models.Record) Option {
	return func(c *Client) {
		c.defaults = records
	}
}

// Client mirrors a shared namespace into a Sink. Events are applied by a
// single goroutine; writes are one-way and their effect comes back through
// the change stream.
type Client struct {
	log       *slog.Logger
	ns        Namespace
	seedDelay time.Duration
	defaults  []models.Record

	mu     sync.Mutex
	sink   Sink
	cancel context.CancelFunc
	done   chan struct{}
	closed bool

	seeded atomic.Bool
}

func New(log *slog.Logger, ns Namespace, opts ...Option) *Client {
	c := &Client{
		log:       log,
		ns:        ns,
		seedDelay: DefaultSeedDelay,
		defaults:  models.DefaultRecords(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Connect joins the namespace, subscribes to every key and arms the
// seed-once timer. ctx bounds only the connection phase.
func (c *Client) Connect(ctx context.Context, sink Sink) error {
	const op = "mesh.Client.Connect"

	log := c.log.With(
		slog.String("op", op),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}
	if c.done != nil {
		return fmt.Errorf("%s: %w", op, ErrAlreadyConnected)
	}

	if err := c.ns.Connect(ctx); err != nil {
		log.Error("failed to connect namespace", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	changes, err := c.ns.On(loopCtx)
	if err != nil {
		cancel()
		log.Error("failed to subscribe", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	c.sink = sink
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.loop(loopCtx, changes)

	log.Info("subscribed to shared namespace", slog.Duration("seed_delay", c.seedDelay))

	return nil
}

func (c *Client) loop(ctx context.Context, changes <-chan Change) {
	defer close(c.done)

	seed := time.NewTimer(c.seedDelay)
	defer seed.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				c.log.Warn("change stream closed")
				changes = nil
				continue
			}
			if ctx.Err() != nil {
				return
			}
			c.handle(ch)
		case <-seed.C:
			c.seedOnce(ctx)
		}
	}
}

func (c *Client) handle(ch Change) {
	const op = "mesh.Client.handle"

	if ch.Key == MetaKey || ch.Key == "" {
		return
	}

	if IsTombstone(ch.Payload) {
		c.sink.Remove(ch.Key)
		metrics.MeshEventsTotal.WithLabelValues("tombstone").Inc()
		return
	}

	rec, err := Decode(ch.Key, ch.Payload)
	if err != nil {
		c.log.Error("failed to decode record",
			slog.String("op", op),
			slog.String("key", ch.Key),
			sl.Err(err),
		)
		metrics.MeshEventsTotal.WithLabelValues("decode_error").Inc()
		return
	}

	c.sink.Upsert(rec)
	metrics.MeshEventsTotal.WithLabelValues("apply").Inc()
}

// seedOnce writes the default records when the namespace holds nothing but
// its metadata key. Two peers booting together may both seed; the writes are
// identical per key.
func (c *Client) seedOnce(ctx context.Context) {
	const op = "mesh.Client.seedOnce"

	log := c.log.With(
		slog.String("op", op),
	)

	if !c.seeded.CompareAndSwap(false, true) {
		return
	}

	snapshot, err := c.ns.Once(ctx)
	if err != nil {
		log.Error("failed to read namespace", sl.Err(err))
		return
	}

	if !isVacant(snapshot) {
		log.Debug("namespace already populated, seeding skipped", slog.Int("keys", len(snapshot)))
		return
	}

	log.Info("namespace is empty, seeding defaults", slog.Int("records", len(c.defaults)))

	for _, rec := range c.defaults {
		payload, err := Encode(rec)
		if err != nil {
			log.Error("failed to encode default record", slog.String("id", rec.ID), sl.Err(err))
			continue
		}

		if err := c.ns.Put(ctx, rec.ID, payload); err != nil {
			metrics.MeshWritesTotal.WithLabelValues("seed", "error").Inc()
			log.Error("failed to seed record", slog.String("id", rec.ID), sl.Err(err))
			continue
		}
		metrics.MeshWritesTotal.WithLabelValues("seed", "ok").Inc()
	}
}

func isVacant(snapshot map[string][]byte) bool {
	for key := range snapshot {
		if key != MetaKey {
			return false
		}
	}
	return true
}

// Publish writes the whole record under its id. No acknowledgement is
// awaited; only a synchronous write failure is returned.
func (c *Client) Publish(ctx context.Context, rec models.Record) error {
	const op = "mesh.Client.Publish"

	if rec.ID == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyID)
	}
	if c.isClosed() {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	payload, err := Encode(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.ns.Put(ctx, rec.ID, payload); err != nil {
		metrics.MeshWritesTotal.WithLabelValues("put", "error").Inc()
		c.log.Error("failed to publish record",
			slog.String("op", op),
			slog.String("id", rec.ID),
			sl.Err(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.MeshWritesTotal.WithLabelValues("put", "ok").Inc()

	return nil
}

// Delete writes a tombstone under id so every peer observes the removal.
func (c *Client) Delete(ctx context.Context, id string) error {
	const op = "mesh.Client.Delete"

	if id == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyID)
	}
	if c.isClosed() {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	if err := c.ns.Put(ctx, id, nil); err != nil {
		metrics.MeshWritesTotal.WithLabelValues("tombstone", "error").Inc()
		c.log.Error("failed to write tombstone",
			slog.String("op", op),
			slog.String("id", id),
			sl.Err(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.MeshWritesTotal.WithLabelValues("tombstone", "ok").Inc()

	return nil
}

// Teardown unsubscribes and waits for the event loop to stop. Once it
// returns the sink is never called again. Must not be called from a Sink
// callback.
func (c *Client) Teardown() error {
	const op = "mesh.Client.Teardown"

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	if err := c.ns.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.log.Info("replication client stopped")

	return nil
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
