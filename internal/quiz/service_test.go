package quiz

import (
	"errors"
	"testing"

	"security-quiz/internal/models"
)

type fakeStore struct {
	attempts  map[string]*models.EmployeeResult
	employees map[string]*models.Employee

	upsertErr   error
	upsertCalls int
	findCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		attempts:  make(map[string]*models.EmployeeResult),
		employees: make(map[string]*models.Employee),
	}
}

func (f *fakeStore) FindAttemptByEmployeeID(employeeID string) (*models.EmployeeResult, error) {
	f.findCalls++
	attempt, ok := f.attempts[employeeID]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

func (f *fakeStore) UpsertAttempt(result *models.EmployeeResult) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.attempts[result.EmployeeID] = result
	return nil
}

func (f *fakeStore) FindEmployeeByID(employeeID string) (*models.Employee, error) {
	employee, ok := f.employees[employeeID]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) NotifyResultSaved(employeeID string, percentage float64, passed bool) {
	f.events = append(f.events, employeeID)
}

func testQuestions() []models.Question {
	questions := make([]models.Question, 5)
	for i := range questions {
		questions[i] = models.Question{
			Text:          "question",
			Options:       []string{"a", "b", "c"},
			CorrectAnswer: 0,
		}
	}
	return questions
}

func TestStartQuizRequiresFields(t *testing.T) {
	service := NewService(newFakeStore(), nil, nil, testQuestions())

	_, err := service.StartQuiz(EntryRequest{EmployeeName: "  ", EmployeeID: ""})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("err = %v, want ErrMissingFields", err)
	}
}

func TestStartQuizRefusesPriorAttemptVerbatim(t *testing.T) {
	store := newFakeStore()
	store.attempts["E100"] = &models.EmployeeResult{
		EmployeeID: "E100",
		Percentage: 73.33333333333333,
		TimeTaken:  412,
	}
	service := NewService(store, nil, nil, testQuestions())

	_, err := service.StartQuiz(EntryRequest{EmployeeName: "Ahmed Ali", EmployeeID: "E100"})

	var attempted *AlreadyAttemptedError
	if !errors.As(err, &attempted) {
		t.Fatalf("err = %v, want AlreadyAttemptedError", err)
	}
	if attempted.Percentage != 73.33333333333333 {
		t.Errorf("echoed percentage = %v, want stored value unchanged", attempted.Percentage)
	}
	if attempted.TimeTaken != 412 {
		t.Errorf("echoed time = %d, want 412", attempted.TimeTaken)
	}
}

func TestStartQuizPrefersDirectoryName(t *testing.T) {
	store := newFakeStore()
	store.employees["E200"] = &models.Employee{EmployeeID: "E200", FirstName: "سارة", LastName: "الأحمد"}
	service := NewService(store, nil, nil, testQuestions())

	resp, err := service.StartQuiz(EntryRequest{EmployeeName: "whatever was typed", EmployeeID: "E200"})
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	if resp.EmployeeName != "سارة الأحمد" {
		t.Errorf("name = %q, want directory name", resp.EmployeeName)
	}
	if resp.TotalQuestions != 5 {
		t.Errorf("total questions = %d, want 5", resp.TotalQuestions)
	}
}

func TestNavigationGuards(t *testing.T) {
	service := NewService(newFakeStore(), nil, nil, testQuestions())
	resp, err := service.StartQuiz(EntryRequest{EmployeeName: "Ahmed", EmployeeID: "E1"})
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	id := resp.SessionID

	// Forward navigation blocked until the current question is answered.
	if _, err := service.Next(id); !errors.Is(err, ErrAnswerRequired) {
		t.Fatalf("Next without answer err = %v, want ErrAnswerRequired", err)
	}

	if err := service.SelectAnswer(id, 0, 1); err != nil {
		t.Fatalf("SelectAnswer returned error: %v", err)
	}
	index, err := service.Next(id)
	if err != nil || index != 1 {
		t.Fatalf("Next = (%d, %v), want (1, nil)", index, err)
	}

	// Questions ahead of the cursor are unreachable.
	if err := service.SelectAnswer(id, 3, 0); !errors.Is(err, ErrInvalidQuestionIndex) {
		t.Errorf("answering ahead err = %v, want ErrInvalidQuestionIndex", err)
	}

	// Backward navigation always works and keeps the answer.
	index, err = service.Previous(id)
	if err != nil || index != 0 {
		t.Fatalf("Previous = (%d, %v), want (0, nil)", index, err)
	}
	view, err := service.Session(id)
	if err != nil {
		t.Fatalf("Session returned error: %v", err)
	}
	if view.Answers[0] != 1 {
		t.Errorf("answer cleared by backward navigation: %v", view.Answers)
	}

	// Previous at the first question stays put.
	index, err = service.Previous(id)
	if err != nil || index != 0 {
		t.Errorf("Previous at 0 = (%d, %v), want (0, nil)", index, err)
	}

	// Out-of-range option rejected.
	if err := service.SelectAnswer(id, 0, 9); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("bad option err = %v, want ErrInvalidOption", err)
	}
}

func answerAllAndAdvance(t *testing.T, service *Service, sessionID string, correct int) {
	t.Helper()
	questions := service.questions
	for i := range questions {
		option := questions[i].CorrectAnswer
		if i >= correct {
			option = (questions[i].CorrectAnswer + 1) % len(questions[i].Options)
		}
		if err := service.SelectAnswer(sessionID, i, option); err != nil {
			t.Fatalf("SelectAnswer(%d) returned error: %v", i, err)
		}
		if i < len(questions)-1 {
			if _, err := service.Next(sessionID); err != nil {
				t.Fatalf("Next at %d returned error: %v", i, err)
			}
		}
	}
}

func TestSubmitOnlyFromLastQuestion(t *testing.T) {
	service := NewService(newFakeStore(), nil, nil, testQuestions())
	resp, _ := service.StartQuiz(EntryRequest{EmployeeName: "Ahmed", EmployeeID: "E1"})

	if _, err := service.Submit(resp.SessionID); !errors.Is(err, ErrNotLastQuestion) {
		t.Fatalf("Submit from first question err = %v, want ErrNotLastQuestion", err)
	}
}

func TestSubmitPersistsAndCompletes(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	service := NewService(store, nil, notifier, testQuestions())
	resp, _ := service.StartQuiz(EntryRequest{EmployeeName: "Ahmed", EmployeeID: "E1"})
	answerAllAndAdvance(t, service, resp.SessionID, 4)

	result, err := service.Submit(resp.SessionID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.Score != 4 || !result.Passed {
		t.Errorf("result = %d correct passed=%t, want 4 correct passed", result.Score, result.Passed)
	}
	if result.Percentage != 80.0 {
		t.Errorf("percentage = %v, want 80", result.Percentage)
	}
	if len(result.IncorrectAnswers) != 1 {
		t.Errorf("incorrect answers = %d, want 1", len(result.IncorrectAnswers))
	}

	saved, ok := store.attempts["E1"]
	if !ok {
		t.Fatal("attempt not persisted")
	}
	if saved.Score != 4 || saved.ID == "" {
		t.Errorf("persisted attempt = %+v", saved)
	}
	if len(notifier.events) != 1 || notifier.events[0] != "E1" {
		t.Errorf("notifier events = %v, want [E1]", notifier.events)
	}

	// The completed session refuses further submissions.
	if _, err := service.Submit(resp.SessionID); !errors.Is(err, ErrQuizCompleted) {
		t.Errorf("second submit err = %v, want ErrQuizCompleted", err)
	}
}

func TestSubmitFailureKeepsSessionRetryEligible(t *testing.T) {
	store := newFakeStore()
	store.upsertErr = errors.New("connection refused")
	service := NewService(store, nil, nil, testQuestions())
	resp, _ := service.StartQuiz(EntryRequest{EmployeeName: "Ahmed", EmployeeID: "E1"})
	answerAllAndAdvance(t, service, resp.SessionID, 5)

	_, err := service.Submit(resp.SessionID)
	if !errors.Is(err, ErrSaveFailed) {
		t.Fatalf("err = %v, want ErrSaveFailed", err)
	}

	session, getErr := service.sessions.Get(resp.SessionID)
	if getErr != nil {
		t.Fatalf("session gone after failed submit: %v", getErr)
	}
	if !session.timer.Running() {
		t.Error("timer not restarted after failed submit")
	}
	for i, a := range session.Answers() {
		if a == UnansweredIndex {
			t.Errorf("answer %d cleared by failed submit", i)
		}
	}

	// Retry succeeds once the store recovers.
	store.upsertErr = nil
	result, err := service.Submit(resp.SessionID)
	if err != nil {
		t.Fatalf("retry submit returned error: %v", err)
	}
	if result.Score != 5 || result.Percentage != 100.0 {
		t.Errorf("retry result = %+v", result)
	}
	if store.upsertCalls != 2 {
		t.Errorf("upsert calls = %d, want 2", store.upsertCalls)
	}
}

func TestSubmitIncompleteRejectedBeforeScoring(t *testing.T) {
	service := NewService(newFakeStore(), nil, nil, testQuestions())
	resp, _ := service.StartQuiz(EntryRequest{EmployeeName: "Ahmed", EmployeeID: "E1"})
	answerAllAndAdvance(t, service, resp.SessionID, 5)

	// Force a hole; navigation guards prevent this through the API.
	session, _ := service.sessions.Get(resp.SessionID)
	session.mu.Lock()
	session.answers[2] = UnansweredIndex
	session.mu.Unlock()

	if _, err := service.Submit(resp.SessionID); !errors.Is(err, ErrIncompleteAnswers) {
		t.Fatalf("err = %v, want ErrIncompleteAnswers", err)
	}
	if !session.timer.Running() {
		t.Error("timer stopped by rejected incomplete submit")
	}
}

func TestStaleSessionOperationsNoOp(t *testing.T) {
	service := NewService(newFakeStore(), nil, nil, testQuestions())

	if _, err := service.Session("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Session err = %v, want ErrSessionNotFound", err)
	}
	if err := service.SelectAnswer("missing", 0, 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SelectAnswer err = %v, want ErrSessionNotFound", err)
	}
	if _, err := service.Submit("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Submit err = %v, want ErrSessionNotFound", err)
	}
}

func TestQuestionsHideCorrectAnswers(t *testing.T) {
	service := NewService(newFakeStore(), nil, nil, testQuestions())

	for i, dto := range service.Questions() {
		if dto.CorrectAnswer != nil {
			t.Errorf("question %d leaks the correct answer", i)
		}
		if dto.Index != i {
			t.Errorf("question %d has index %d", i, dto.Index)
		}
	}
}
