package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyplan-api/internal/models"
)

func TestTimetableStoreRoundTrip(t *testing.T) {
	store, err := NewTimetableStore(t.TempDir(), "courses.csv")
	require.NoError(t, err)

	rows := []models.TimetableRow{
		{Day: "mon", Period: "1", CourseName: "calculus", Credit: 3, Type: "required", Sweet: 4, Cool: 7},
		{Day: "tue", Period: "3", CourseName: "pottery", Credit: 1, Type: "general-education", Sweet: 9, Cool: 2},
	}
	require.NoError(t, store.Save(rows))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, rows, loaded)
}

func TestTimetableStoreMissingFileIsEmpty(t *testing.T) {
	store, err := NewTimetableStore(t.TempDir(), "courses.csv")
	require.NoError(t, err)

	rows, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTimetableStoreSaveReplaces(t *testing.T) {
	store, err := NewTimetableStore(t.TempDir(), "courses.csv")
	require.NoError(t, err)

	require.NoError(t, store.Save([]models.TimetableRow{{Day: "mon", CourseName: "old", Credit: 2}}))
	require.NoError(t, store.Save([]models.TimetableRow{{Day: "fri", CourseName: "new", Credit: 4}}))

	rows, err := store.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0].CourseName)
}
