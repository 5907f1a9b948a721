package devserver

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hoteldesk/go-hotel-client/core"
)

// Store keeps every collection in memory, in insertion order.
type Store struct {
	mu          sync.RWMutex
	collections map[string]core.RecordSet
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{collections: make(map[string]core.RecordSet), now: time.Now}
}

// List returns a copy of the collection.
func (s *Store) List(collection string) core.RecordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(core.RecordSet, 0, len(s.collections[collection]))
	for _, r := range s.collections[collection] {
		out = append(out, r.Clone())
	}
	return out
}

// Create stores fields under a new uuid.
func (s *Store) Create(collection string, fields core.Params) core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC().Format(time.RFC3339)
	record := core.Record{}
	for k, v := range fields {
		record[k] = v
	}
	record["id"] = uuid.NewString()
	record["createdAt"] = now
	record["updatedAt"] = now
	s.collections[collection] = append(s.collections[collection], record)
	return record.Clone()
}

// Replace overwrites the fields of record id. It reports false when there is no such record.
func (s *Store) Replace(collection, id string, fields core.Params) (core.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.collections[collection] {
		if existing.RecordID() != id {
			continue
		}
		record := core.Record{}
		for k, v := range fields {
			record[k] = v
		}
		record["id"] = id
		record["createdAt"] = existing["createdAt"]
		record["updatedAt"] = s.now().UTC().Format(time.RFC3339)
		s.collections[collection][i] = record
		return record.Clone(), true
	}
	return nil, false
}

// Delete removes record id. It reports false when there is no such record.
func (s *Store) Delete(collection, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.collections[collection]
	for i, existing := range records {
		if existing.RecordID() == id {
			s.collections[collection] = append(records[:i:i], records[i+1:]...)
			return true
		}
	}
	return false
}
