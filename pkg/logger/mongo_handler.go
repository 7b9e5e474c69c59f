// MongoHandler is an slog.Handler that mirrors log records into a MongoDB
// collection, giving the back-office a queryable audit trail of stock
// movements and order activity without touching the hot request path:
//
//   - Records are enqueued on a buffered channel (non-blocking).
//   - One background goroutine drains the channel in batches via InsertMany.
//   - When the channel is full the record is dropped; logging must never
//     block application code.
//   - Close flushes the queue and disconnects.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// AuditDocument is the shape written to MongoDB.
type AuditDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// MongoHandler wraps another slog.Handler and tees records to MongoDB.
type MongoHandler struct {
	inner  slog.Handler
	col    *mongo.Collection
	client *mongo.Client
	queue  chan AuditDocument
	done   chan struct{}
	attrs  []slog.Attr
}

// NewMongoHandler connects to uri and tees inner's records into
// db/collection. The caller must eventually call Close.
func NewMongoHandler(inner slog.Handler, uri, db, collection string) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("logger/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger/mongo: ping: %w", err)
	}

	h := &MongoHandler{
		inner:  inner,
		col:    client.Database(db).Collection(collection),
		client: client,
		queue:  make(chan AuditDocument, mongoQueueSize),
		done:   make(chan struct{}),
	}
	go h.drain()
	return h, nil
}

func (h *MongoHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *MongoHandler) Handle(ctx context.Context, rec slog.Record) error {
	doc := AuditDocument{
		Time:  rec.Time,
		Level: rec.Level.String(),
		Msg:   rec.Message,
		Attrs: bson.M{},
	}
	for _, a := range h.attrs {
		addAttr(doc.Attrs, &doc, a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		addAttr(doc.Attrs, &doc, a)
		return true
	})

	select {
	case h.queue <- doc:
	default:
		// Queue full: drop rather than block the caller.
	}

	return h.inner.Handle(ctx, rec)
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MongoHandler{
		inner:  h.inner.WithAttrs(attrs),
		col:    h.col,
		client: h.client,
		queue:  h.queue,
		done:   h.done,
		attrs:  append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	return &MongoHandler{
		inner:  h.inner.WithGroup(name),
		col:    h.col,
		client: h.client,
		queue:  h.queue,
		done:   h.done,
		attrs:  h.attrs,
	}
}

// Close flushes pending documents and disconnects from MongoDB.
func (h *MongoHandler) Close() error {
	close(h.done)

	// Flush whatever is still queued.
	batch := h.collectBatch(len(h.queue))
	if len(batch) > 0 {
		h.insert(batch)
	}
	return h.client.Disconnect(context.Background())
}

func (h *MongoHandler) drain() {
	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			if batch := h.collectBatch(mongoBatchSize); len(batch) > 0 {
				h.insert(batch)
			}
		}
	}
}

func (h *MongoHandler) collectBatch(max int) []interface{} {
	var batch []interface{}
	for len(batch) < max {
		select {
		case doc := <-h.queue:
			batch = append(batch, doc)
		default:
			return batch
		}
	}
	return batch
}

func (h *MongoHandler) insert(batch []interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Insert errors are swallowed: the primary handler already emitted
	// the line, and the audit mirror is best-effort.
	_, _ = h.col.InsertMany(ctx, batch)
}

func addAttr(attrs bson.M, doc *AuditDocument, a slog.Attr) {
	if a.Key == "request_id" {
		doc.RequestID = a.Value.String()
		return
	}
	attrs[a.Key] = a.Value.String()
}
