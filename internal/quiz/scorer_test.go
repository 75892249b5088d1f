package quiz

import (
	"errors"
	"math"
	"testing"

	"security-quiz/internal/models"
)

func makeQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			Text:          "question",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
		}
	}
	return questions
}

func answersWithCorrect(questions []models.Question, correct int) []int {
	answers := make([]int, len(questions))
	for i := range answers {
		if i < correct {
			answers[i] = questions[i].CorrectAnswer
		} else {
			answers[i] = (questions[i].CorrectAnswer + 1) % len(questions[i].Options)
		}
	}
	return answers
}

func TestScorePercentageAndPassFail(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		correct        int
		wantPercentage float64
		wantPassed     bool
	}{
		{"eleven of fifteen passes", 15, 11, 100.0 * 11 / 15, true},
		{"ten of fifteen fails", 15, 10, 100.0 * 10 / 15, false},
		{"exactly seventy passes", 10, 7, 70.0, true},
		{"all correct", 15, 15, 100.0, true},
		{"none correct", 15, 0, 0.0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			questions := makeQuestions(tc.total)
			result, err := Score(questions, answersWithCorrect(questions, tc.correct))
			if err != nil {
				t.Fatalf("Score returned error: %v", err)
			}
			if result.Score != tc.correct {
				t.Errorf("score = %d, want %d", result.Score, tc.correct)
			}
			if math.Abs(result.Percentage-tc.wantPercentage) > 1e-9 {
				t.Errorf("percentage = %v, want %v", result.Percentage, tc.wantPercentage)
			}
			if result.Passed != tc.wantPassed {
				t.Errorf("passed = %t, want %t", result.Passed, tc.wantPassed)
			}
			if got := len(result.IncorrectAnswers); got != tc.total-tc.correct {
				t.Errorf("incorrect answers = %d, want %d", got, tc.total-tc.correct)
			}
		})
	}
}

func TestScoreRejectsIncompleteAnswers(t *testing.T) {
	questions := makeQuestions(5)
	answers := answersWithCorrect(questions, 5)
	answers[2] = UnansweredIndex

	_, err := Score(questions, answers)
	if !errors.Is(err, ErrIncompleteAnswers) {
		t.Fatalf("err = %v, want ErrIncompleteAnswers", err)
	}
}

func TestScoreRejectsCountMismatch(t *testing.T) {
	questions := makeQuestions(5)
	_, err := Score(questions, []int{0, 1})
	if !errors.Is(err, ErrAnswerCountMismatch) {
		t.Fatalf("err = %v, want ErrAnswerCountMismatch", err)
	}
}

func TestScoreIncorrectAnswerDetail(t *testing.T) {
	questions := []models.Question{
		{Text: "q1", Options: []string{"right", "wrong"}, CorrectAnswer: 0},
		{Text: "q2", Options: []string{"alpha", "beta"}, CorrectAnswer: 1},
	}

	result, err := Score(questions, []int{1, 1})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if len(result.IncorrectAnswers) != 1 {
		t.Fatalf("incorrect answers = %d, want 1", len(result.IncorrectAnswers))
	}

	mistake := result.IncorrectAnswers[0]
	if mistake.Question != "q1" {
		t.Errorf("question = %q, want %q", mistake.Question, "q1")
	}
	if mistake.SelectedText != "wrong" {
		t.Errorf("selected = %q, want %q", mistake.SelectedText, "wrong")
	}
	if mistake.CorrectText != "right" {
		t.Errorf("correct = %q, want %q", mistake.CorrectText, "right")
	}
	if mistake.QuestionIndex != 0 {
		t.Errorf("question index = %d, want 0", mistake.QuestionIndex)
	}
}

func TestSelectedOptionTextOutOfRange(t *testing.T) {
	q := models.Question{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 0}
	if got := selectedOptionText(q, UnansweredIndex); got != NotAnsweredLabel {
		t.Errorf("selectedOptionText = %q, want sentinel %q", got, NotAnsweredLabel)
	}
}

func TestBankIsValid(t *testing.T) {
	if err := ValidateBank(Questions()); err != nil {
		t.Fatalf("shipped bank invalid: %v", err)
	}
	if TotalQuestions() != 15 {
		t.Errorf("bank size = %d, want 15", TotalQuestions())
	}
}

func TestValidateBankRejectsBadBanks(t *testing.T) {
	if err := ValidateBank(nil); err == nil {
		t.Error("empty bank accepted")
	}
	if err := ValidateBank([]models.Question{{Text: "q", Options: []string{"only"}, CorrectAnswer: 0}}); err == nil {
		t.Error("single-option question accepted")
	}
	if err := ValidateBank([]models.Question{{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 2}}); err == nil {
		t.Error("out-of-range correct index accepted")
	}
}
