package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"security-quiz/internal/models"
)

var (
	ErrMissingFields = errors.New("employee name and employee id are required")
	ErrSaveFailed    = errors.New("failed to save results")
)

// AlreadyAttemptedError refuses quiz entry when a prior attempt exists. The
// stored percentage is echoed back verbatim, never recomputed.
type AlreadyAttemptedError struct {
	Percentage float64
	TimeTaken  int
}

func (e *AlreadyAttemptedError) Error() string {
	return fmt.Sprintf("quiz already attempted with %.1f%%", e.Percentage)
}

// AttemptStore is the persistence gateway the flow controller writes
// through.
type AttemptStore interface {
	FindAttemptByEmployeeID(employeeID string) (*models.EmployeeResult, error)
	UpsertAttempt(result *models.EmployeeResult) error
	FindEmployeeByID(employeeID string) (*models.Employee, error)
}

// AttemptCache is an optional fast path for the entry guard.
type AttemptCache interface {
	GetAttempt(employeeID string) (*models.EmployeeResult, error)
	SetAttempt(result *models.EmployeeResult) error
}

// Notifier fans a saved result out to listening dashboards.
type Notifier interface {
	NotifyResultSaved(employeeID string, percentage float64, passed bool)
}

type Service struct {
	store     AttemptStore
	cache     AttemptCache
	notifier  Notifier
	sessions  *SessionStore
	questions []models.Question
	validate  *validator.Validate
}

func NewService(store AttemptStore, cache AttemptCache, notifier Notifier, questions []models.Question) *Service {
	return &Service{
		store:     store,
		cache:     cache,
		notifier:  notifier,
		sessions:  NewSessionStore(),
		questions: questions,
		validate:  validator.New(),
	}
}

type EntryRequest struct {
	EmployeeName string `json:"employee_name" validate:"required"`
	EmployeeID   string `json:"employee_id" validate:"required"`
}

type StartResponse struct {
	SessionID      string `json:"session_id"`
	EmployeeName   string `json:"employee_name"`
	EmployeeID     string `json:"employee_id"`
	TotalQuestions int    `json:"total_questions"`
}

// StartQuiz is the entry guard: it validates the form, refuses employees who
// already hold an attempt, and opens a session with the timer running.
func (s *Service) StartQuiz(req EntryRequest) (*StartResponse, error) {
	req.EmployeeName = strings.TrimSpace(req.EmployeeName)
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrMissingFields
	}

	prior, err := s.findPriorAttempt(req.EmployeeID)
	if err != nil && !errors.Is(err, ErrAttemptNotFound) {
		return nil, err
	}
	if prior != nil {
		return nil, &AlreadyAttemptedError{
			Percentage: prior.Percentage,
			TimeTaken:  prior.TimeTaken,
		}
	}

	displayName := req.EmployeeName
	employee, err := s.store.FindEmployeeByID(req.EmployeeID)
	switch {
	case err == nil:
		displayName = employee.FullName()
	case errors.Is(err, ErrEmployeeNotFound):
		// Unregistered ids keep the submitted name.
	default:
		return nil, err
	}

	session := s.sessions.Create(req.EmployeeID, displayName, len(s.questions))
	log.Printf("Started quiz session %s for employee %s", session.ID, req.EmployeeID)

	return &StartResponse{
		SessionID:      session.ID,
		EmployeeName:   displayName,
		EmployeeID:     req.EmployeeID,
		TotalQuestions: len(s.questions),
	}, nil
}

func (s *Service) findPriorAttempt(employeeID string) (*models.EmployeeResult, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAttempt(employeeID); err == nil && cached != nil {
			return cached, nil
		}
	}
	return s.store.FindAttemptByEmployeeID(employeeID)
}

// Questions returns the bank without correct answers.
func (s *Service) Questions() []models.QuestionDTO {
	dtos := make([]models.QuestionDTO, len(s.questions))
	for i, q := range s.questions {
		dtos[i] = q.ToDTO(i, false)
	}
	return dtos
}

type SessionView struct {
	SessionID      string `json:"session_id"`
	EmployeeName   string `json:"employee_name"`
	CurrentIndex   int    `json:"current_index"`
	Answers        []int  `json:"answers"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	TotalQuestions int    `json:"total_questions"`
}

func (s *Service) Session(sessionID string) (*SessionView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionView{
		SessionID:      session.ID,
		EmployeeName:   session.EmployeeName,
		CurrentIndex:   session.CurrentIndex(),
		Answers:        session.Answers(),
		ElapsedSeconds: session.Elapsed(),
		TotalQuestions: len(s.questions),
	}, nil
}

func (s *Service) SelectAnswer(sessionID string, questionIndex, optionIndex int) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return ErrInvalidQuestionIndex
	}
	if optionIndex < 0 || optionIndex >= len(s.questions[questionIndex].Options) {
		return ErrInvalidOption
	}
	return session.SelectAnswer(questionIndex, optionIndex)
}

func (s *Service) Next(sessionID string) (int, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return 0, err
	}
	return session.Next()
}

func (s *Service) Previous(sessionID string) (int, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return 0, err
	}
	return session.Previous()
}

type SubmitResult struct {
	Score            int                      `json:"score"`
	TotalQuestions   int                      `json:"total_questions"`
	Percentage       float64                  `json:"percentage"`
	Passed           bool                     `json:"passed"`
	TimeTaken        int                      `json:"time_taken"`
	IncorrectAnswers []models.IncorrectAnswer `json:"incorrect_answers"`
}

// Submit grades and persists a completed session. On a store failure the
// session stays in progress with the timer running again, so the employee
// can retry without losing answers.
func (s *Service) Submit(sessionID string) (*SubmitResult, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.completed {
		session.mu.Unlock()
		return nil, ErrQuizCompleted
	}
	if session.currentIndex != len(session.answers)-1 {
		session.mu.Unlock()
		return nil, ErrNotLastQuestion
	}
	answers := make([]int, len(session.answers))
	copy(answers, session.answers)
	session.mu.Unlock()

	for _, a := range answers {
		if a == UnansweredIndex {
			return nil, ErrIncompleteAnswers
		}
	}

	session.timer.Stop()

	scored, err := Score(s.questions, answers)
	if err != nil {
		session.timer.Start()
		return nil, err
	}

	mistakes, err := json.Marshal(scored.IncorrectAnswers)
	if err != nil {
		session.timer.Start()
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	attempt := &models.EmployeeResult{
		ID:               uuid.NewString(),
		EmployeeName:     session.EmployeeName,
		EmployeeID:       session.EmployeeID,
		Score:            scored.Score,
		Percentage:       scored.Percentage,
		Passed:           scored.Passed,
		TimeTaken:        session.timer.Elapsed(),
		IncorrectAnswers: datatypes.JSON(mistakes),
	}

	if err := s.store.UpsertAttempt(attempt); err != nil {
		// Retry-eligible: keep the session in progress, resume the timer.
		session.timer.Start()
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	session.mu.Lock()
	session.completed = true
	session.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SetAttempt(attempt); err != nil {
			log.Printf("Error caching attempt for employee %s: %v", attempt.EmployeeID, err)
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyResultSaved(attempt.EmployeeID, attempt.Percentage, attempt.Passed)
	}

	log.Printf("Employee %s scored %d/%d (%.1f%%), passed=%t, %ds",
		attempt.EmployeeID, scored.Score, len(s.questions), scored.Percentage, scored.Passed, attempt.TimeTaken)

	return &SubmitResult{
		Score:            scored.Score,
		TotalQuestions:   len(s.questions),
		Percentage:       scored.Percentage,
		Passed:           scored.Passed,
		TimeTaken:        attempt.TimeTaken,
		IncorrectAnswers: scored.IncorrectAnswers,
	}, nil
}
