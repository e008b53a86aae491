package metrics

import (
	"sync/atomic"

	"gorm.io/gorm"
)

// QueryCounter is a gorm plugin counting executed statements. It backs the
// friendfeed_db_queries_total series and lets tests assert round trips per request.
type QueryCounter struct {
	reads  atomic.Int64
	writes atomic.Int64
	vec    *Metrics
}

func NewQueryCounter(m *Metrics) *QueryCounter {
	return &QueryCounter{vec: m}
}

func (q *QueryCounter) Name() string { return "friendfeed:query_counter" }

func (q *QueryCounter) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Query().After("gorm:query").Register("friendfeed:count_query", q.read); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("friendfeed:count_row", q.read); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("friendfeed:count_create", q.write); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("friendfeed:count_update", q.write); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("friendfeed:count_delete", q.write)
}

func (q *QueryCounter) read(*gorm.DB) {
	q.reads.Add(1)
	if q.vec != nil {
		q.vec.DBQueries.WithLabelValues("read").Inc()
	}
}

func (q *QueryCounter) write(*gorm.DB) {
	q.writes.Add(1)
	if q.vec != nil {
		q.vec.DBQueries.WithLabelValues("write").Inc()
	}
}

func (q *QueryCounter) Reads() int64  { return q.reads.Load() }
func (q *QueryCounter) Writes() int64 { return q.writes.Load() }

// Reset zeroes the local tallies; the prometheus series are left untouched.
func (q *QueryCounter) Reset() {
	q.reads.Store(0)
	q.writes.Store(0)
}
