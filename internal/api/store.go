package api

import (
	"sync"
	"time"

	"github.com/samcharles93/cbtool/internal/report"
)

// DefaultStoreCapacity bounds how many reports are kept for lookup.
const DefaultStoreCapacity = 1024

type reportRecord struct {
	Report    *report.Report
	CreatedAt time.Time
}

// ReportStore keeps recent validation reports in memory. Once full, the
// oldest report is evicted.
type ReportStore struct {
	mu       sync.Mutex
	capacity int
	reports  map[string]*reportRecord
	order    []string
}

func NewReportStore(capacity int) *ReportStore {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	return &ReportStore{
		capacity: capacity,
		reports:  make(map[string]*reportRecord),
	}
}

// Save assigns r a fresh id and stores it.
func (s *ReportStore) Save(r *report.Report, now time.Time) *reportRecord {
	r.ID = newReportID()
	rec := &reportRecord{Report: r, CreatedAt: now}

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= s.capacity {
		delete(s.reports, s.order[0])
		s.order = s.order[1:]
	}
	s.reports[r.ID] = rec
	s.order = append(s.order, r.ID)
	return rec
}

func (s *ReportStore) Get(id string) (*reportRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.reports[id]
	return rec, ok
}

func (s *ReportStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return false
	}
	delete(s.reports, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *ReportStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}
