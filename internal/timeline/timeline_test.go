package timeline

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(id int64, s string) models.MemoryRecord {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return models.MemoryRecord{ID: id, OwnerID: "alice", Title: "t", Description: "d", CreatedAt: ts}
}

func ids(rs []models.MemoryRecord) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestGroup_YearsAndMonthsNewestFirst(t *testing.T) {
	records := []models.MemoryRecord{
		at(1, "2024-01-05T10:00:00Z"),
		at(2, "2023-12-20T10:00:00Z"),
		at(3, "2024-01-01T10:00:00Z"),
	}

	got := Group(records, time.UTC)

	require.Len(t, got, 2)
	assert.Equal(t, 2024, got[0].Year)
	assert.Equal(t, 2023, got[1].Year)

	require.Len(t, got[0].Months, 1)
	assert.Equal(t, "January", got[0].Months[0].Name)
	assert.Equal(t, []int64{1, 3}, ids(got[0].Months[0].Records))

	require.Len(t, got[1].Months, 1)
	assert.Equal(t, time.December, got[1].Months[0].Month)
	assert.Equal(t, []int64{2}, ids(got[1].Months[0].Records))
}

func TestGroup_MonthsDescendingWithinYear(t *testing.T) {
	records := []models.MemoryRecord{
		at(1, "2024-02-10T00:00:00Z"),
		at(2, "2024-11-01T00:00:00Z"),
		at(3, "2024-02-20T00:00:00Z"),
		at(4, "2024-06-15T00:00:00Z"),
	}

	got := Group(records, time.UTC)
	require.Len(t, got, 1)

	var names []string
	for _, m := range got[0].Months {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"November", "June", "February"}, names)
	assert.Equal(t, []int64{3, 1}, ids(got[0].Months[2].Records))
}

func TestGroup_TiesKeepInputOrder(t *testing.T) {
	records := []models.MemoryRecord{
		at(5, "2024-05-05T05:05:05Z"),
		at(2, "2024-05-05T05:05:05Z"),
		at(9, "2024-05-05T05:05:05Z"),
	}

	got := Group(records, time.UTC)
	assert.Equal(t, []int64{5, 2, 9}, ids(got[0].Months[0].Records))
}

func TestGroup_UsesLocation(t *testing.T) {
	// 23:30 UTC on Dec 31 is already January in UTC+2.
	records := []models.MemoryRecord{at(1, "2023-12-31T23:30:00Z")}

	utc := Group(records, time.UTC)
	assert.Equal(t, 2023, utc[0].Year)

	east := Group(records, time.FixedZone("EET", 2*60*60))
	assert.Equal(t, 2024, east[0].Year)
	assert.Equal(t, time.January, east[0].Months[0].Month)
}

func TestGroup_Empty(t *testing.T) {
	got := Group(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGroup_DoesNotReorderInput(t *testing.T) {
	records := []models.MemoryRecord{at(1, "2020-01-01T00:00:00Z"), at(2, "2024-01-01T00:00:00Z")}
	_ = Group(records, time.UTC)
	assert.Equal(t, []int64{1, 2}, ids(records))
}

func TestLocationLabel(t *testing.T) {
	assert.Equal(t, UnknownLocation, LocationLabel(models.MemoryRecord{}))
	assert.Equal(t, "Porto", LocationLabel(models.MemoryRecord{LocationLabel: "Porto"}))
}
