package memory

import "reflect"

// Record is a single append-only CRDT entry, uniquely keyed by
// (OriginID, LocalSeq) — spec.md §4.12.
type Record struct {
	OriginID  string
	LocalSeq  uint64
	Timestamp float64
	Payload   Content
}

type recordKey struct {
	OriginID string
	LocalSeq uint64
}

// Log is a grow-only set of Records, owned by a single entity. Merges are
// explicit operations — never background tasks (spec.md §5).
type Log struct {
	originID string
	nextSeq  uint64
	records  map[recordKey]Record
}

// NewLog creates an empty log for the given owning origin id.
func NewLog(originID string) *Log {
	return &Log{originID: originID, records: make(map[recordKey]Record)}
}

// Append assigns the next local sequence number for this log's origin and
// stores payload, returning the resulting Record.
func (l *Log) Append(timestamp float64, payload Content) Record {
	r := Record{OriginID: l.originID, LocalSeq: l.nextSeq, Timestamp: timestamp, Payload: payload}
	l.nextSeq++
	l.records[recordKey{r.OriginID, r.LocalSeq}] = r
	return r
}

// Len returns the number of records currently stored.
func (l *Log) Len() int { return len(l.records) }

// Records returns a copy of every stored record.
func (l *Log) Records() []Record {
	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	return out
}

// MergeResult reports how many records a Merge actually added versus found
// already present.
type MergeResult struct {
	Added         int
	AlreadyPresent int
}

// Merge computes the set union of l and other's records, keyed by
// (OriginID, LocalSeq). It mutates l in place and is commutative,
// associative, and idempotent — see spec.md §4.12 and §8.
func (l *Log) Merge(other *Log) MergeResult {
	var res MergeResult
	for k, r := range other.records {
		if _, exists := l.records[k]; exists {
			res.AlreadyPresent++
			continue
		}
		l.records[k] = r
		res.Added++
		if r.OriginID == l.originID && r.LocalSeq >= l.nextSeq {
			l.nextSeq = r.LocalSeq + 1
		}
	}
	return res
}

// TakeLast returns up to k of the log's own records with the highest
// LocalSeq, used by trust-gated CRDT memory sync (spec.md §4.17 step 11).
func (l *Log) TakeLast(k int) []Record {
	all := l.Records()
	// simple selection sort for the top-k; logs are small (session-lived).
	for i := 0; i < len(all) && i < k; i++ {
		maxIdx := i
		for j := i + 1; j < len(all); j++ {
			if all[j].LocalSeq > all[maxIdx].LocalSeq {
				maxIdx = j
			}
		}
		all[i], all[maxIdx] = all[maxIdx], all[i]
	}
	if k > len(all) {
		k = len(all)
	}
	return all[:k]
}

// LoadLog reconstructs a Log from previously persisted records, preserving
// each record's original (OriginID, LocalSeq) identity rather than
// re-appending through this origin's own sequence counter.
func LoadLog(originID string, records []Record) *Log {
	l := NewLog(originID)
	for _, r := range records {
		l.records[recordKey{r.OriginID, r.LocalSeq}] = r
		if r.OriginID == originID && r.LocalSeq >= l.nextSeq {
			l.nextSeq = r.LocalSeq + 1
		}
	}
	return l
}

// MergeLogs computes the union of an arbitrary number of logs into a fresh
// target log without mutating any of the inputs — used by the commutativity/
// associativity property tests in §8.
func MergeLogs(originID string, logs ...*Log) *Log {
	out := NewLog(originID)
	for _, l := range logs {
		for k, r := range l.records {
			out.records[k] = r
		}
	}
	return out
}

// Equal reports whether two logs hold exactly the same set of records,
// irrespective of internal ordering — used to assert CRDT merge properties.
func (l *Log) Equal(other *Log) bool {
	if len(l.records) != len(other.records) {
		return false
	}
	for k, r := range l.records {
		or, ok := other.records[k]
		if !ok || !reflect.DeepEqual(or, r) {
			return false
		}
	}
	return true
}
