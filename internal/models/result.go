package models

import (
	"time"

	"gorm.io/datatypes"
)

// Employee is a row in the externally managed directory. The quiz service
// only ever reads it.
type Employee struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	EmployeeID string    `json:"employee_id" gorm:"uniqueIndex;not null"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName joins the directory name parts for display.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// EmployeeResult is one persisted quiz attempt. EmployeeID is the natural
// key: a later submission for the same employee replaces the mutable fields
// in place rather than appending a row.
type EmployeeResult struct {
	ID               string         `json:"id" gorm:"primaryKey"`
	EmployeeName     string         `json:"employee_name" gorm:"not null"`
	EmployeeID       string         `json:"employee_id" gorm:"uniqueIndex;not null"`
	Score            int            `json:"score"`
	Percentage       float64        `json:"percentage"`
	Passed           bool           `json:"passed"`
	TimeTaken        int            `json:"time_taken" gorm:"default:0"`
	IncorrectAnswers datatypes.JSON `json:"incorrect_answers,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (EmployeeResult) TableName() string {
	return "employee_results"
}

// IncorrectAnswer is one wrong (or skipped) question in an attempt, stored
// alongside the result so the per-attempt report can be rebuilt later.
type IncorrectAnswer struct {
	Question      string `json:"question"`
	SelectedText  string `json:"selected_answer"`
	CorrectText   string `json:"correct_answer"`
	QuestionIndex int    `json:"question_index"`
}
