// Package audit records an action trail of mutating console operations in
// MongoDB. Writes are asynchronous: entries go through a buffered channel
// into batched InsertMany calls, so a slow or absent Mongo never blocks an
// operator action. When no trail is configured every Record call is a
// no-op.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

const (
	bufferSize    = 4096
	batchSize     = 50
	flushInterval = 2 * time.Second
)

// Entry is one recorded action.
type Entry struct {
	Action  string         `bson:"action"`
	Actor   string         `bson:"actor,omitempty"`
	Details map[string]any `bson:"details,omitempty"`
	At      time.Time      `bson:"at"`
}

// Trail is an asynchronous writer of audit entries.
type Trail struct {
	client *mongo.Client
	coll   *mongo.Collection
	ch     chan Entry
	done   chan struct{}
	once   sync.Once
}

// Open connects to Mongo and starts the background writer.
func Open(ctx context.Context, uri, db, coll string) (*Trail, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	t := &Trail{
		client: client,
		coll:   client.Database(db).Collection(coll),
		ch:     make(chan Entry, bufferSize),
		done:   make(chan struct{}),
	}
	go t.run()
	return t, nil
}

// Record queues one entry. It never blocks; when the buffer is full the
// entry is dropped.
func (t *Trail) Record(action, actor string, details map[string]any) {
	e := Entry{Action: action, Actor: actor, Details: details, At: time.Now().UTC()}
	select {
	case t.ch <- e:
	default:
	}
}

// Close flushes buffered entries and disconnects.
func (t *Trail) Close(ctx context.Context) error {
	t.once.Do(func() { close(t.ch) })
	select {
	case <-t.done:
	case <-ctx.Done():
	}
	return t.client.Disconnect(ctx)
}

func (t *Trail) run() {
	defer close(t.done)

	batch := make([]interface{}, 0, batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := t.coll.InsertMany(ctx, batch); err != nil {
			logger.Warn("audit: insert failed", "error", err, "dropped", len(batch))
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case e, ok := <-t.ch:
			if !ok {
				flush()
				return
			}
			batch = append(batch, bson.M{
				"action":  e.Action,
				"actor":   e.Actor,
				"details": e.Details,
				"at":      e.At,
			})
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// ─── slog sink ────────────────────────────────────────────────────────────────

// LogHandler adapts the trail into a slog.Handler, so warnings and errors
// emitted while operating land in the same collection as recorded actions.
// Entries go through the same non-blocking queue as Record.
type LogHandler struct {
	trail *Trail
	level slog.Level
	attrs []slog.Attr
}

// NewLogHandler returns a handler that writes records at or above level.
func NewLogHandler(t *Trail, level slog.Level) *LogHandler {
	return &LogHandler{trail: t, level: level}
}

func (h *LogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *LogHandler) Handle(_ context.Context, r slog.Record) error {
	details := map[string]any{"level": r.Level.String()}
	for _, a := range h.attrs {
		details[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		details[a.Key] = a.Value.Any()
		return true
	})
	h.trail.Record("log:"+r.Message, "", details)
	return nil
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &LogHandler{trail: h.trail, level: h.level, attrs: merged}
}

func (h *LogHandler) WithGroup(string) slog.Handler { return h }

// ─── Package-level trail ──────────────────────────────────────────────────────

var (
	mu  sync.RWMutex
	std *Trail
)

// Configure installs the process-wide trail used by Record.
func Configure(t *Trail) {
	mu.Lock()
	std = t
	mu.Unlock()
}

// Record writes to the configured trail, or does nothing when none is set.
func Record(action, actor string, details map[string]any) {
	mu.RLock()
	t := std
	mu.RUnlock()
	if t != nil {
		t.Record(action, actor, details)
	}
}
