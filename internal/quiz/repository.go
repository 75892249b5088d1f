package quiz

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"security-quiz/internal/models"
)

// ErrAttemptNotFound means no attempt exists for an employee id. This is a
// normal branch, not an I/O failure.
var ErrAttemptNotFound = errors.New("attempt not found")

// ErrEmployeeNotFound means the employee id is absent from the directory.
var ErrEmployeeNotFound = errors.New("employee not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindAttemptByEmployeeID(employeeID string) (*models.EmployeeResult, error) {
	var result models.EmployeeResult
	err := r.db.Where("employee_id = ?", employeeID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		log.Printf("Error finding attempt for employee %s: %v", employeeID, err)
		return nil, err
	}
	return &result, nil
}

// UpsertAttempt writes one attempt keyed on employee_id. A conflicting row
// has its mutable fields replaced in place, so the store never accumulates
// rows for an employee through this path and the read-then-write race is
// avoided entirely.
func (r *Repository) UpsertAttempt(result *models.EmployeeResult) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"employee_name", "score", "percentage", "passed", "time_taken", "incorrect_answers",
		}),
	}).Create(result).Error
	if err != nil {
		log.Printf("Error upserting attempt for employee %s: %v", result.EmployeeID, err)
		return err
	}
	return nil
}

func (r *Repository) FindEmployeeByID(employeeID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("employee_id = ?", employeeID).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		log.Printf("Error finding employee %s: %v", employeeID, err)
		return nil, err
	}
	return &employee, nil
}

func (r *Repository) ListAttempts() ([]models.EmployeeResult, error) {
	var results []models.EmployeeResult
	err := r.db.Order("created_at desc").Find(&results).Error
	if err != nil {
		log.Printf("Error listing attempts: %v", err)
		return nil, err
	}
	return results, nil
}

func (r *Repository) ListEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Find(&employees).Error
	if err != nil {
		log.Printf("Error listing employees: %v", err)
		return nil, err
	}
	return employees, nil
}
