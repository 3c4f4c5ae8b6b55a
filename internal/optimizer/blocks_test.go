package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
)

func TestMakeBlocksEveningWindow(t *testing.T) {
	start := time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)

	blocks, err := MakeBlocks(start, end, 30)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, start, blocks[0].Start)
	assert.Equal(t, start.Add(30*time.Minute), blocks[0].End)
	assert.Equal(t, start.Add(30*time.Minute), blocks[1].Start)
	assert.Equal(t, end, blocks[1].End)
}

func TestMakeBlocksContiguousAndIncreasing(t *testing.T) {
	start := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	blocks, err := MakeBlocks(start, end, 45)
	require.NoError(t, err)
	require.Len(t, blocks, 5)
	for i := 1; i < len(blocks); i++ {
		assert.True(t, blocks[i].Start.After(blocks[i-1].Start))
		assert.Equal(t, blocks[i-1].End, blocks[i].Start)
	}
	// 6th block would overrun the window.
	assert.False(t, blocks[len(blocks)-1].End.After(end))
}

func TestMakeBlocksWindowShorterThanBlock(t *testing.T) {
	start := time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)

	blocks, err := MakeBlocks(start, start.Add(20*time.Minute), 30)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestMakeBlocksInvalidWindow(t *testing.T) {
	start := time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)

	_, err := MakeBlocks(start, start, 30)
	assert.ErrorIs(t, err, appErrors.ErrInvalidWindow)

	_, err = MakeBlocks(start, start.Add(-time.Hour), 30)
	assert.ErrorIs(t, err, appErrors.ErrInvalidWindow)
}

func TestMakeBlocksRejectsNonPositiveLength(t *testing.T) {
	start := time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)

	_, err := MakeBlocks(start, start.Add(time.Hour), 0)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestMakeBlocksRestartable(t *testing.T) {
	start := time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	first, err := MakeBlocks(start, end, 30)
	require.NoError(t, err)
	second, err := MakeBlocks(start, end, 30)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
