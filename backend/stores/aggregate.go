package stores

import (
	"math"

	"unihive/backend/models"
)

// CourseSummary is the derived view of all rating submissions for a
// course. Nil fields mean "no data": a course with zero submissions is
// unrated, not difficulty 0 or grade F-.
type CourseSummary struct {
	AverageDifficulty *float64
	AverageGrade      *models.Grade
	ModalCreditHours  *int
	// All instructor names in submission order, duplicates included.
	// Deliberately not a set: the roster mirrors raw submissions.
	Instructors []string
}

// Summarize computes the aggregate view from a submission sequence.
// Pure and stateless; callers pass rows in storage order.
func Summarize(ratings []models.CourseRating) CourseSummary {
	var summary CourseSummary

	var difficultySum float64
	var difficultyCount int
	var gradeSum int
	var gradeCount int
	hourCounts := map[int]int{}
	var hourOrder []int

	for _, r := range ratings {
		if r.Difficulty != nil {
			difficultySum += *r.Difficulty
			difficultyCount++
		}
		if r.Grade != nil {
			gradeSum += int(*r.Grade)
			gradeCount++
		}
		if r.Hours != nil {
			if _, seen := hourCounts[*r.Hours]; !seen {
				hourOrder = append(hourOrder, *r.Hours)
			}
			hourCounts[*r.Hours]++
		}
		if r.Instructor != nil {
			summary.Instructors = append(summary.Instructors, *r.Instructor)
		}
	}

	if difficultyCount > 0 {
		avg := difficultySum / float64(difficultyCount)
		summary.AverageDifficulty = &avg
	}
	if gradeCount > 0 {
		summary.AverageGrade = averageGrade(gradeSum, gradeCount)
	}
	if len(hourOrder) > 0 {
		summary.ModalCreditHours = modalHours(hourCounts, hourOrder)
	}

	return summary
}

// averageGrade rounds the mean ordinal half-up and clamps it onto the
// scale. Ties round to the higher ordinal, so [A, B] averages to A-.
func averageGrade(sum, count int) *models.Grade {
	mean := float64(sum) / float64(count)
	ordinal := int(math.Floor(mean + 0.5))
	if ordinal < int(models.GradeFMinus) {
		ordinal = int(models.GradeFMinus)
	}
	if ordinal > int(models.GradeAPlus) {
		ordinal = int(models.GradeAPlus)
	}
	grade := models.Grade(ordinal)
	return &grade
}

// modalHours picks the most frequent hours value; on a frequency tie
// the first-submitted value wins.
func modalHours(counts map[int]int, order []int) *int {
	best := order[0]
	for _, hours := range order[1:] {
		if counts[hours] > counts[best] {
			best = hours
		}
	}
	return &best
}
