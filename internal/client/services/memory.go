// Package services contains the application services behind the memorymap
// CLI. MemoryService scopes every store operation to the calling principal
// and produces the derived views (timeline, share links, shared views).
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/dmitrijs2005/memorymap/internal/ownership"
	"github.com/dmitrijs2005/memorymap/internal/share"
	"github.com/dmitrijs2005/memorymap/internal/timeline"
)

// RecordStore is the store surface the service needs. *store.Store
// implements it.
type RecordStore interface {
	Create(ctx context.Context, owner models.Principal, f models.Fields) (models.MemoryRecord, error)
	Update(ctx context.Context, id int64, p models.Patch) (models.MemoryRecord, error)
	Delete(ctx context.Context, id int64)
	Clear(ctx context.Context)
	List() []models.MemoryRecord
	Get(id int64) (models.MemoryRecord, bool)
	PersistErr() error
}

// MemoryService defines the owner-scoped memory operations.
//
// Contract:
//   - Create/Update/Delete act on the principal's records only; another
//     owner's record is indistinguishable from a missing one.
//   - Delete never fails for a missing id.
//   - Clear wipes the whole store and needs a logged-in principal.
//   - Share builds a read-only link for records the principal owns.
//   - OpenShared decodes a link and resolves it against the store.
type MemoryService interface {
	Create(ctx context.Context, p models.Principal, f models.Fields) (models.MemoryRecord, error)
	Update(ctx context.Context, p models.Principal, id int64, patch models.Patch) (models.MemoryRecord, error)
	Delete(ctx context.Context, p models.Principal, id int64) error
	Clear(ctx context.Context, p models.Principal) error
	Mine(p models.Principal) []models.MemoryRecord
	Get(p models.Principal, id int64) (models.MemoryRecord, error)
	Timeline(p models.Principal) []timeline.Year
	Share(p models.Principal, ids []int64) (string, error)
	ShareAll(p models.Principal) (string, error)
	OpenShared(raw string) (share.View, error)
	PersistErr() error
}

type memoryService struct {
	store RecordStore
	codec *share.Codec
	loc   *time.Location
}

// NewMemoryService binds a service to a store, a share codec and the time
// zone used for the timeline.
func NewMemoryService(store RecordStore, codec *share.Codec, loc *time.Location) MemoryService {
	return &memoryService{store: store, codec: codec, loc: loc}
}

func requirePrincipal(p models.Principal) error {
	if p.IsZero() {
		return fmt.Errorf("%w: log in first", common.ErrorUnauthorized)
	}
	return nil
}

func (s *memoryService) Create(ctx context.Context, p models.Principal, f models.Fields) (models.MemoryRecord, error) {
	return s.store.Create(ctx, p, f)
}

func (s *memoryService) Get(p models.Principal, id int64) (models.MemoryRecord, error) {
	if err := requirePrincipal(p); err != nil {
		return models.MemoryRecord{}, err
	}
	r, ok := s.store.Get(id)
	if !ok || !ownership.Owns(r, p) {
		return models.MemoryRecord{}, fmt.Errorf("%w: memory %d", common.ErrorNotFound, id)
	}
	return r, nil
}

func (s *memoryService) Update(ctx context.Context, p models.Principal, id int64, patch models.Patch) (models.MemoryRecord, error) {
	if _, err := s.Get(p, id); err != nil {
		return models.MemoryRecord{}, err
	}
	return s.store.Update(ctx, id, patch)
}

func (s *memoryService) Delete(ctx context.Context, p models.Principal, id int64) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}
	if r, ok := s.store.Get(id); ok && ownership.Owns(r, p) {
		s.store.Delete(ctx, id)
	}
	return nil
}

func (s *memoryService) Clear(ctx context.Context, p models.Principal) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}
	s.store.Clear(ctx)
	return nil
}

func (s *memoryService) Mine(p models.Principal) []models.MemoryRecord {
	return ownership.VisibleTo(s.store.List(), p)
}

func (s *memoryService) Timeline(p models.Principal) []timeline.Year {
	return timeline.Group(s.Mine(p), s.loc)
}

func (s *memoryService) Share(p models.Principal, ids []int64) (string, error) {
	if err := requirePrincipal(p); err != nil {
		return "", err
	}
	for _, id := range ids {
		if _, err := s.Get(p, id); err != nil {
			return "", err
		}
	}
	return s.codec.Encode(ids, models.AccessReadOnly)
}

func (s *memoryService) ShareAll(p models.Principal) (string, error) {
	mine := s.Mine(p)
	ids := make([]int64, len(mine))
	for i, r := range mine {
		ids[i] = r.ID
	}
	return s.Share(p, ids)
}

func (s *memoryService) OpenShared(raw string) (share.View, error) {
	d, err := share.Decode(raw)
	if err != nil {
		return share.View{}, err
	}
	return share.Resolve(d, s.store), nil
}

func (s *memoryService) PersistErr() error {
	return s.store.PersistErr()
}
