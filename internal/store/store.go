// Package store is the authoritative, owner-agnostic collection of memory
// records and the persisted id counter.
//
// A Store is rehydrated once with Load and then mutated by a single caller
// (the CLI loop), so it takes no locks. Every mutation updates memory first
// and then writes the whole state through to the key-value backend. A failed
// write is logged as a persistence warning and never rolls back the change.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/dmitrijs2005/memorymap/internal/logging"
	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/dmitrijs2005/memorymap/internal/repositories/kv"
)

// Keys under which the state is persisted.
const (
	KeyMemories = "memories"
	KeyNextID   = "nextId"
)

const initialID int64 = 1

// Observer is called after every mutation with a copy of the collection.
type Observer func(records []models.MemoryRecord)

type Store struct {
	repo kv.Repository
	log  logging.Logger
	now  func() time.Time

	records []models.MemoryRecord
	nextID  int64

	observers  []Observer
	persistErr error
}

// Load rehydrates a store from repo. Absent state yields an empty store with
// the counter at 1; unreadable or malformed state does the same and is logged
// as a persistence warning.
func Load(ctx context.Context, repo kv.Repository, logger logging.Logger) *Store {
	s := &Store{
		repo:    repo,
		log:     logger.With("module", "store"),
		now:     time.Now,
		records: []models.MemoryRecord{},
		nextID:  initialID,
	}

	st, err := readState(ctx, repo)
	if err != nil {
		s.persistErr = err
		s.log.Warn(ctx, "starting with an empty store", "error", err)
		return s
	}

	s.records, s.nextID = st.records, st.nextID
	s.log.Debug(ctx, "store loaded", "records", len(s.records), "next_id", s.nextID)
	return s
}

// Create validates f, assigns the next id and owner, stamps CreatedAt and
// persists. The counter advances by exactly one even when the write fails.
func (s *Store) Create(ctx context.Context, owner models.Principal, f models.Fields) (models.MemoryRecord, error) {
	if owner.IsZero() {
		return models.MemoryRecord{}, fmt.Errorf("%w: no principal", common.ErrorUnauthorized)
	}

	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return models.MemoryRecord{}, err
	}

	r := models.MemoryRecord{
		ID:            s.nextID,
		OwnerID:       owner.ID,
		Title:         f.Title,
		Description:   f.Description,
		LocationLabel: f.LocationLabel,
		Latitude:      f.Latitude,
		Longitude:     f.Longitude,
		CreatedAt:     s.now().UTC(),
	}
	s.nextID++
	s.records = append(s.records, r)

	s.persist(ctx)
	s.notify()
	return r.Clone(), nil
}

// Update merges the supplied fields of p into record id and stamps
// UpdatedAt. An empty patch changes nothing and is not persisted.
func (s *Store) Update(ctx context.Context, id int64, p models.Patch) (models.MemoryRecord, error) {
	i := s.index(id)
	if i < 0 {
		return models.MemoryRecord{}, fmt.Errorf("%w: memory %d", common.ErrorNotFound, id)
	}
	if err := p.Validate(); err != nil {
		return models.MemoryRecord{}, err
	}
	if p.IsEmpty() {
		return s.records[i].Clone(), nil
	}

	r := p.Apply(s.records[i])
	ts := s.now().UTC()
	if ts.Before(r.CreatedAt) {
		ts = r.CreatedAt
	}
	r.UpdatedAt = &ts
	s.records[i] = r

	s.persist(ctx)
	s.notify()
	return r.Clone(), nil
}

// Delete removes record id. A missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.records = slices.Delete(s.records, i, i+1)

	s.persist(ctx)
	s.notify()
}

// Clear drops every record, resets the counter to 1 and removes both keys
// from the backend.
func (s *Store) Clear(ctx context.Context) {
	s.records = []models.MemoryRecord{}
	s.nextID = initialID

	var err error
	for _, k := range []string{KeyMemories, KeyNextID} {
		if derr := s.repo.Delete(ctx, k); derr != nil && err == nil {
			err = derr
		}
	}
	s.recordPersist(ctx, err)
	s.notify()
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []models.MemoryRecord {
	return cloneRecords(s.records)
}

// Get returns a copy of record id.
func (s *Store) Get(id int64) (models.MemoryRecord, bool) {
	i := s.index(id)
	if i < 0 {
		return models.MemoryRecord{}, false
	}
	return s.records[i].Clone(), true
}

// NextID is the id the next Create will assign.
func (s *Store) NextID() int64 { return s.nextID }

// Subscribe registers o for change notifications.
func (s *Store) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// PersistErr reports the outcome of the most recent backend read or write.
// A non-nil value wraps common.ErrorPersistence.
func (s *Store) PersistErr() error { return s.persistErr }

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.records, func(r models.MemoryRecord) bool { return r.ID == id })
}

func (s *Store) notify() {
	if len(s.observers) == 0 {
		return
	}
	snapshot := s.List()
	for _, o := range s.observers {
		o(snapshot)
	}
}

func (s *Store) persist(ctx context.Context) {
	values, err := encodeState(s.records, s.nextID)
	if err == nil {
		err = kv.SetAll(ctx, s.repo, values)
	}
	s.recordPersist(ctx, err)
}

func (s *Store) recordPersist(ctx context.Context, err error) {
	if err == nil {
		s.persistErr = nil
		return
	}
	s.persistErr = fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	s.log.Warn(ctx, "changes visible this session only", "error", err)
}

func cloneRecords(in []models.MemoryRecord) []models.MemoryRecord {
	out := make([]models.MemoryRecord, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

func encodeState(records []models.MemoryRecord, nextID int64) (map[string][]byte, error) {
	mem, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode memories: %w", err)
	}
	id, err := json.Marshal(nextID)
	if err != nil {
		return nil, fmt.Errorf("encode nextId: %w", err)
	}
	return map[string][]byte{KeyMemories: mem, KeyNextID: id}, nil
}
