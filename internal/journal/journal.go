// Package journal keeps an in-memory history of decoded execution reports,
// ordered by transaction time. It is a bookkeeping aid for callers tracking
// an order's lifecycle; nothing in it touches the wire.
package journal

import (
	"time"

	"github.com/tidwall/btree"

	"heimdall/internal/protocol"
)

// Entry is one recorded report with the keys the journal indexes on pulled
// out of the report once, at record time.
type Entry struct {
	OrderID string
	Status  protocol.OrderStatus
	Time    time.Time
	Report  *protocol.ExecutionReport
}

// Journal indexes entries by (transaction time, order ID). An order ID
// appears at most once: recording a newer report for a known order replaces
// the previous entry, so the journal always holds the latest status.
// Not safe for concurrent use.
type Journal struct {
	byTime *btree.BTreeG[*Entry]
	byID   map[string]*Entry
}

func New() *Journal {
	// Earliest transaction first, order ID breaking ties.
	byTime := btree.NewBTreeG(func(a, b *Entry) bool {
		if a.Time.Equal(b.Time) {
			return a.OrderID < b.OrderID
		}
		return a.Time.Before(b.Time)
	})
	return &Journal{
		byTime: byTime,
		byID:   make(map[string]*Entry),
	}
}

// Record extracts the journal keys from the report and stores it. Reports
// missing any key field are rejected unrecorded.
func (j *Journal) Record(report *protocol.ExecutionReport) (*Entry, error) {
	orderID, err := report.OrderID()
	if err != nil {
		return nil, err
	}
	status, err := report.Status()
	if err != nil {
		return nil, err
	}
	ts, err := report.Timestamp()
	if err != nil {
		return nil, err
	}

	if prev, ok := j.byID[orderID]; ok {
		j.byTime.Delete(prev)
	}
	entry := &Entry{
		OrderID: orderID,
		Status:  status,
		Time:    ts,
		Report:  report,
	}
	j.byTime.Set(entry)
	j.byID[orderID] = entry
	return entry, nil
}

// Latest returns the most recently recorded entry for an order.
func (j *Journal) Latest(orderID string) (*Entry, bool) {
	entry, ok := j.byID[orderID]
	return entry, ok
}

func (j *Journal) Len() int {
	return j.byTime.Len()
}

// Ascend walks every entry from the earliest transaction onward until fn
// returns false.
func (j *Journal) Ascend(fn func(*Entry) bool) {
	j.byTime.Scan(fn)
}

// Since walks entries whose transaction time is at or after t.
func (j *Journal) Since(t time.Time, fn func(*Entry) bool) {
	j.byTime.Ascend(&Entry{Time: t}, fn)
}
