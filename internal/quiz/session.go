package quiz

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrQuizCompleted        = errors.New("quiz already completed")
	ErrAnswerRequired       = errors.New("current question must be answered first")
	ErrNotLastQuestion      = errors.New("submission only allowed from the last question")
	ErrInvalidQuestionIndex = errors.New("invalid question index")
	ErrInvalidOption        = errors.New("invalid option index")
)

// Session is one employee's in-flight quiz. All mutation goes through its
// methods under the session lock; handlers against a finished or evicted
// session get an error back instead of touching stale state.
type Session struct {
	ID           string
	EmployeeID   string
	EmployeeName string

	mu           sync.Mutex
	currentIndex int
	answers      []int
	timer        *Stopwatch
	completed    bool
}

func newSession(employeeID, employeeName string, questionCount int) *Session {
	answers := make([]int, questionCount)
	for i := range answers {
		answers[i] = UnansweredIndex
	}
	return &Session{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		answers:      answers,
		timer:        NewStopwatch(),
	}
}

// SelectAnswer records a choice for the given question. Answering the
// current question or revising an earlier one is allowed; questions ahead of
// the cursor are not reachable yet.
func (s *Session) SelectAnswer(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return ErrQuizCompleted
	}
	if questionIndex < 0 || questionIndex >= len(s.answers) || questionIndex > s.currentIndex {
		return ErrInvalidQuestionIndex
	}
	s.answers[questionIndex] = optionIndex
	return nil
}

// Next advances the cursor. Blocked until the current question is answered.
func (s *Session) Next() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return s.currentIndex, ErrQuizCompleted
	}
	if s.answers[s.currentIndex] == UnansweredIndex {
		return s.currentIndex, ErrAnswerRequired
	}
	if s.currentIndex < len(s.answers)-1 {
		s.currentIndex++
	}
	return s.currentIndex, nil
}

// Previous moves the cursor back. Always permitted; answers are kept.
func (s *Session) Previous() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return s.currentIndex, ErrQuizCompleted
	}
	if s.currentIndex > 0 {
		s.currentIndex--
	}
	return s.currentIndex, nil
}

// Answers returns a copy of the selections so far.
func (s *Session) Answers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex
}

func (s *Session) Elapsed() int {
	return s.timer.Elapsed()
}

// SessionStore holds in-flight sessions in memory. Nothing survives a
// restart; an interrupted quiz is simply taken again.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (st *SessionStore) Create(employeeID, employeeName string, questionCount int) *Session {
	session := newSession(employeeID, employeeName, questionCount)
	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

func (st *SessionStore) Get(sessionID string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (st *SessionStore) Remove(sessionID string) {
	st.mu.Lock()
	delete(st.sessions, sessionID)
	st.mu.Unlock()
}
