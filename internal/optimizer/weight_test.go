package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/studyplan-api/internal/models"
)

var weightToday = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

func TestWeightBaseFormula(t *testing.T) {
	params := DefaultWeightParams()
	course := models.Course{Name: "algorithms", Credits: 3, Difficulty: 5, Category: models.CategoryElective}

	// 3 × 1.0 × (1 + 0.10×5)
	assert.InDelta(t, 4.5, params.Weight(course, weightToday), 1e-9)
}

func TestWeightCategoryCoefficients(t *testing.T) {
	params := DefaultWeightParams()
	base := models.Course{Name: "x", Credits: 2, Difficulty: 0}

	cases := []struct {
		category string
		want     float64
	}{
		{models.CategoryRequired, 2.6},
		{models.CategoryElective, 2.0},
		{models.CategoryGeneralEdu, 1.7},
		{models.CategoryLab, 2.2},
		{"swimming", 2.0}, // unknown category falls back to 1.0
		{"", 2.0},
	}
	for _, tc := range cases {
		c := base
		c.Category = tc.category
		assert.InDelta(t, tc.want, params.Weight(c, weightToday), 1e-9, "category %q", tc.category)
	}
}

func TestWeightMonotonicInCreditsAndDifficulty(t *testing.T) {
	params := DefaultWeightParams()
	c := models.Course{Name: "x", Credits: 1, Difficulty: 1, Category: models.CategoryRequired}

	prev := params.Weight(c, weightToday)
	for credits := 2.0; credits <= 6; credits++ {
		c.Credits = credits
		w := params.Weight(c, weightToday)
		assert.GreaterOrEqual(t, w, prev)
		prev = w
	}

	c = models.Course{Name: "x", Credits: 3, Difficulty: 0, Category: models.CategoryLab}
	prev = params.Weight(c, weightToday)
	for difficulty := 1.0; difficulty <= 10; difficulty++ {
		c.Difficulty = difficulty
		w := params.Weight(c, weightToday)
		assert.GreaterOrEqual(t, w, prev)
		prev = w
	}
}

func TestWeightExamBoost(t *testing.T) {
	params := DefaultWeightParams()
	base := models.Course{Name: "calculus", Credits: 3, Difficulty: 0, Category: models.CategoryElective}

	noExam := params.Weight(base, weightToday)

	examToday := base
	examToday.ExamDate = "2025-03-10"
	assert.InDelta(t, noExam+0.80, params.Weight(examToday, weightToday), 1e-9)

	examSoon := base
	examSoon.ExamDate = "2025-03-17" // 7 of 21 horizon days away
	assert.InDelta(t, noExam+0.80*(1.0-7.0/21.0), params.Weight(examSoon, weightToday), 1e-9)

	examFar := base
	examFar.ExamDate = "2025-06-01"
	assert.InDelta(t, noExam, params.Weight(examFar, weightToday), 1e-9)

	examPassed := base
	examPassed.ExamDate = "2025-03-01"
	assert.InDelta(t, noExam, params.Weight(examPassed, weightToday), 1e-9)
}

func TestWeightUnparseableExamDateEqualsNoExam(t *testing.T) {
	params := DefaultWeightParams()
	plain := models.Course{Name: "x", Credits: 4, Difficulty: 2, Category: models.CategoryRequired}
	garbled := plain
	garbled.ExamDate = "soon-ish"

	assert.Equal(t, params.Weight(plain, weightToday), params.Weight(garbled, weightToday))
}

func TestWeightAcceptsCommonDateLayouts(t *testing.T) {
	params := DefaultWeightParams()
	base := models.Course{Name: "x", Credits: 1, Difficulty: 0, Category: models.CategoryElective}

	for _, raw := range []string{"2025-03-12", "2025/03/12", "2025.03.12", "03/12/2025", "Mar 12, 2025", "12 Mar 2025"} {
		c := base
		c.ExamDate = raw
		assert.Greater(t, params.Weight(c, weightToday), params.Weight(base, weightToday), "layout %q", raw)
	}
}

func TestWeightDeterministic(t *testing.T) {
	params := DefaultWeightParams()
	c := models.Course{Name: "x", Credits: 3, Difficulty: 7, Category: models.CategoryLab, ExamDate: "2025-03-20"}

	first := params.Weight(c, weightToday)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, params.Weight(c, weightToday))
	}
}
