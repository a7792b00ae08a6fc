package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/dmitrijs2005/memorymap/internal/logging"
	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/dmitrijs2005/memorymap/internal/repositories/kv"
)

type state struct {
	records []models.MemoryRecord
	nextID  int64
}

func readState(ctx context.Context, repo kv.Repository) (state, error) {
	mem, err := repo.Get(ctx, KeyMemories)
	if err != nil {
		return state{}, fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	}
	id, err := repo.Get(ctx, KeyNextID)
	if err != nil {
		return state{}, fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	}
	return decodeState(mem, id)
}

// decodeState turns the two persisted values into a consistent state.
// Records with a non-positive or repeated id are dropped (first wins) and the
// counter is raised above the highest id when the stored one lags behind or
// is missing.
func decodeState(mem, id []byte) (state, error) {
	st := state{records: []models.MemoryRecord{}, nextID: initialID}

	if mem != nil {
		var records []models.MemoryRecord
		if err := json.Unmarshal(mem, &records); err != nil {
			return state{records: []models.MemoryRecord{}, nextID: initialID},
				fmt.Errorf("%w: malformed %s: %v", common.ErrorPersistence, KeyMemories, err)
		}
		seen := make(map[int64]struct{}, len(records))
		for _, r := range records {
			if r.ID <= 0 {
				continue
			}
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			st.records = append(st.records, r)
		}
	}

	if id != nil {
		var n int64
		if err := json.Unmarshal(id, &n); err == nil && n > st.nextID {
			st.nextID = n
		}
	}

	for _, r := range st.records {
		if r.ID >= st.nextID {
			st.nextID = r.ID + 1
		}
	}
	return st, nil
}

// Snapshot is a read-only copy of persisted records.
type Snapshot struct {
	records []models.MemoryRecord
}

// List returns a copy of the snapshot's records in store order.
func (s Snapshot) List() []models.MemoryRecord {
	return cloneRecords(s.records)
}

// ReadSnapshot loads the current records without creating a mutable store.
// Backend failures are returned; malformed state is logged and read as empty.
func ReadSnapshot(ctx context.Context, repo kv.Repository, logger logging.Logger) (Snapshot, error) {
	mem, err := repo.Get(ctx, KeyMemories)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	}
	return DecodeSnapshot(ctx, mem, logger), nil
}

// DecodeSnapshot builds a snapshot from a raw KeyMemories value. Absent or
// malformed values give an empty snapshot.
func DecodeSnapshot(ctx context.Context, mem []byte, logger logging.Logger) Snapshot {
	st, err := decodeState(mem, nil)
	if err != nil {
		logger.Warn(ctx, "reading malformed state as empty", "error", err)
		return Snapshot{records: []models.MemoryRecord{}}
	}
	return Snapshot{records: st.records}
}
