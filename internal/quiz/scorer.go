package quiz

import (
	"errors"

	"security-quiz/internal/models"
)

// PassThreshold is the sole pass criterion. Exactly 70.0 passes.
const PassThreshold = 70.0

// NotAnsweredLabel is recorded as the selected answer for skipped questions.
const NotAnsweredLabel = "لم يتم الإجابة"

// UnansweredIndex marks a question with no selection yet.
const UnansweredIndex = -1

var (
	ErrIncompleteAnswers   = errors.New("all questions must be answered before submission")
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
)

// ScoreResult is the outcome of scoring one complete attempt.
type ScoreResult struct {
	Score            int
	Percentage       float64
	Passed           bool
	IncorrectAnswers []models.IncorrectAnswer
}

// Score grades an attempt. answers holds one selected option index per
// question, UnansweredIndex for none. It rejects incomplete input before
// grading anything and has no side effects.
func Score(questions []models.Question, answers []int) (ScoreResult, error) {
	if len(answers) != len(questions) {
		return ScoreResult{}, ErrAnswerCountMismatch
	}
	for _, a := range answers {
		if a == UnansweredIndex {
			return ScoreResult{}, ErrIncompleteAnswers
		}
	}

	result := ScoreResult{}
	for i, q := range questions {
		selected := answers[i]
		if selected == q.CorrectAnswer {
			result.Score++
			continue
		}
		result.IncorrectAnswers = append(result.IncorrectAnswers, models.IncorrectAnswer{
			Question:      q.Text,
			SelectedText:  selectedOptionText(q, selected),
			CorrectText:   q.Options[q.CorrectAnswer],
			QuestionIndex: i,
		})
	}

	result.Percentage = float64(result.Score) / float64(len(questions)) * 100
	result.Passed = result.Percentage >= PassThreshold
	return result, nil
}

func selectedOptionText(q models.Question, selected int) string {
	if selected < 0 || selected >= len(q.Options) {
		return NotAnsweredLabel
	}
	return q.Options[selected]
}
