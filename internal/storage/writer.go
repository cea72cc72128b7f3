package storage

import (
	"database/sql"
	"log/slog"
	"sync"
)

// Writer applies mutations to the database asynchronously. The in-memory
// store is updated first and never waits on (or rolls back for) the
// durable write; a failed write is reported through the notify callback
// and otherwise forgotten. Jobs run strictly in enqueue order so the
// database converges on the same tree the store holds.
type Writer struct {
	db     *sql.DB
	jobs   chan job
	notify func(op string, err error)
	done   chan struct{}
	once   sync.Once
	closed bool
	mu     sync.Mutex
}

type job struct {
	op string
	fn func(*sql.DB) error
}

// NewWriter starts the background writer. notify may be nil.
func NewWriter(db *sql.DB, notify func(op string, err error)) *Writer {
	if notify == nil {
		notify = func(string, error) {}
	}
	w := &Writer{
		db:     db,
		jobs:   make(chan job, 256),
		notify: notify,
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Enqueue queues a durable write. Safe to call from the event loop; the
// call does not wait for the write to land.
func (w *Writer) Enqueue(op string, fn func(*sql.DB) error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.jobs <- job{op: op, fn: fn}
	w.mu.Unlock()
}

// Close stops accepting jobs, drains the queue, and waits for the last
// write to finish.
func (w *Writer) Close() {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.jobs)
		w.mu.Unlock()
		<-w.done
	})
}

func (w *Writer) run() {
	defer close(w.done)
	for j := range w.jobs {
		if err := j.fn(w.db); err != nil {
			slog.Debug("durable write failed", "op", j.op, "error", err)
			w.notify(j.op, err)
		}
	}
}
