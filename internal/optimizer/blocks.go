package optimizer

import (
	"time"

	"github.com/noah-isme/studyplan-api/internal/models"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
)

// DefaultBlockMinutes is the stock block length.
const DefaultBlockMinutes = 30

// MakeBlocks produces the ordered, contiguous sequence of fixed-length
// blocks that fit the window: blocks are emitted while start+duration
// stays within windowEnd. A window shorter than one block yields an empty
// sequence; a window whose end is not after its start is an error, so the
// two cases stay distinguishable.
func MakeBlocks(windowStart, windowEnd time.Time, blockMinutes int) ([]models.TimeBlock, error) {
	if blockMinutes <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "blockMinutes must be positive")
	}
	if !windowEnd.After(windowStart) {
		return nil, appErrors.ErrInvalidWindow
	}

	d := time.Duration(blockMinutes) * time.Minute
	blocks := []models.TimeBlock{}
	for t := windowStart; !t.Add(d).After(windowEnd); t = t.Add(d) {
		blocks = append(blocks, models.TimeBlock{Start: t, End: t.Add(d)})
	}
	return blocks, nil
}
