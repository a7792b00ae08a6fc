package ownership

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id int64, owner string) models.MemoryRecord {
	return models.MemoryRecord{ID: id, OwnerID: owner, Title: fmt.Sprint(id), Description: "d"}
}

func TestVisibleTo_KeepsOwnRecordsInOrder(t *testing.T) {
	all := []models.MemoryRecord{rec(1, "alice"), rec(2, "bob"), rec(3, "alice"), rec(4, "carol"), rec(5, "alice")}

	got := VisibleTo(all, models.Principal{ID: "alice"})
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 3, 5}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestVisibleTo_EmptyPrincipalSeesNothing(t *testing.T) {
	all := []models.MemoryRecord{rec(1, ""), rec(2, "bob")}

	got := VisibleTo(all, models.Principal{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestVisibleTo_NeverLeaksOtherOwners(t *testing.T) {
	owners := []string{"alice", "bob", "carol", ""}
	rnd := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		n := rnd.Intn(30)
		all := make([]models.MemoryRecord, n)
		for i := range all {
			all[i] = rec(int64(i+1), owners[rnd.Intn(len(owners))])
		}

		for _, o := range owners {
			p := models.Principal{ID: o}
			for _, r := range VisibleTo(all, p) {
				require.Equal(t, o, r.OwnerID)
			}
		}
	}
}

func TestOwns(t *testing.T) {
	assert.True(t, Owns(rec(1, "alice"), models.Principal{ID: "alice"}))
	assert.False(t, Owns(rec(1, "alice"), models.Principal{ID: "bob"}))
	assert.False(t, Owns(rec(1, ""), models.Principal{}))
}
