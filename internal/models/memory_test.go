package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFields_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		wantErr bool
	}{
		{name: "ok", fields: Fields{Title: "Lisbon", Description: "tram 28", Latitude: 38.7, Longitude: -9.1}},
		{name: "blank title", fields: Fields{Title: "   ", Description: "x"}, wantErr: true},
		{name: "blank description", fields: Fields{Title: "x", Description: "\t\n"}, wantErr: true},
		{name: "latitude too big", fields: Fields{Title: "x", Description: "y", Latitude: 91}, wantErr: true},
		{name: "longitude too small", fields: Fields{Title: "x", Description: "y", Longitude: -180.5}, wantErr: true},
		{name: "latitude NaN", fields: Fields{Title: "x", Description: "y", Latitude: math.NaN()}, wantErr: true},
		{name: "edges are fine", fields: Fields{Title: "x", Description: "y", Latitude: -90, Longitude: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrorValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFields_Normalize_TrimsText(t *testing.T) {
	f := Fields{Title: "  a ", Description: "\tb\n", LocationLabel: " c ", Latitude: 1, Longitude: 2}.Normalize()
	assert.Equal(t, Fields{Title: "a", Description: "b", LocationLabel: "c", Latitude: 1, Longitude: 2}, f)
}

func TestMemoryRecord_Clone_DetachesUpdatedAt(t *testing.T) {
	ts := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	r := MemoryRecord{ID: 1, UpdatedAt: &ts}

	c := r.Clone()
	require.NotNil(t, c.UpdatedAt)
	*c.UpdatedAt = ts.Add(time.Hour)

	assert.Equal(t, ts, *r.UpdatedAt)
}

func TestPrincipal_IsZero(t *testing.T) {
	assert.True(t, Principal{}.IsZero())
	assert.True(t, Principal{ID: "  "}.IsZero())
	assert.False(t, Principal{ID: "alice"}.IsZero())
}

func TestParsePatch_OK(t *testing.T) {
	p, err := ParsePatch([]string{
		"title = New title",
		"Description=a=b",
		"location=Porto",
		"latitude=41.15",
		"longitude=-8.61",
	})
	require.NoError(t, err)

	require.NotNil(t, p.Title)
	assert.Equal(t, "New title", *p.Title)
	require.NotNil(t, p.Description)
	assert.Equal(t, "a=b", *p.Description)
	require.NotNil(t, p.LocationLabel)
	assert.Equal(t, "Porto", *p.LocationLabel)
	require.NotNil(t, p.Location)
	assert.Equal(t, Location{Latitude: 41.15, Longitude: -8.61}, *p.Location)
}

func TestParsePatch_Errors(t *testing.T) {
	tests := []struct {
		name  string
		items []string
	}{
		{name: "unknown field", items: []string{"image=cat.png"}},
		{name: "owner cannot be patched", items: []string{"ownerId=mallory"}},
		{name: "missing equals", items: []string{"title"}},
		{name: "bad number", items: []string{"latitude=north", "longitude=1"}},
		{name: "lone latitude", items: []string{"latitude=1"}},
		{name: "lone longitude", items: []string{"longitude=1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePatch(tt.items)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestParsePatch_EmptyInputIsEmptyPatch(t *testing.T) {
	p, err := ParsePatch(nil)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestPatch_ValidateAndApply(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := MemoryRecord{
		ID: 3, OwnerID: "alice", Title: "old", Description: "desc",
		LocationLabel: "Oslo", Latitude: 59.9, Longitude: 10.7, CreatedAt: created,
	}

	require.ErrorIs(t, Patch{Title: strPtr(" ")}.Validate(), common.ErrorValidation)
	require.ErrorIs(t, Patch{Description: strPtr("")}.Validate(), common.ErrorValidation)
	require.ErrorIs(t, Patch{Location: &Location{Latitude: 100}}.Validate(), common.ErrorValidation)

	p := Patch{Title: strPtr("  new ")}
	require.NoError(t, p.Validate())

	got := p.Apply(orig)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, orig.Description, got.Description)
	assert.Equal(t, orig.Latitude, got.Latitude)
	assert.Equal(t, orig.Longitude, got.Longitude)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.OwnerID, got.OwnerID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)

	moved := Patch{Location: &Location{Latitude: 1, Longitude: 2}}.Apply(orig)
	assert.Equal(t, 1.0, moved.Latitude)
	assert.Equal(t, 2.0, moved.Longitude)
}

func TestParseAccessMode(t *testing.T) {
	m, err := ParseAccessMode("readonly")
	require.NoError(t, err)
	assert.Equal(t, AccessReadOnly, m)

	_, err = ParseAccessMode("readwrite")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestShareDescriptor_Contains(t *testing.T) {
	d := ShareDescriptor{RecordIDs: []int64{3, 7}}
	assert.True(t, d.Contains(7))
	assert.False(t, d.Contains(4))
}

func TestMemoryRecord_UnmarshalJSON_LegacyOwnerKey(t *testing.T) {
	var r MemoryRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"userId":"alice","title":"t","createdAt":"2024-01-05T10:00:00Z"}`), &r))
	assert.Equal(t, "alice", r.OwnerID)
	assert.Equal(t, int64(4), r.ID)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), r.CreatedAt)

	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"ownerId":"bob","userId":"alice"}`), &r))
	assert.Equal(t, "bob", r.OwnerID)

	require.Error(t, json.Unmarshal([]byte(`{"id":"x"}`), &r))
}
