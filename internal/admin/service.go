package admin

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"security-quiz/internal/models"
)

// ErrReportNotFound means no attempt exists for the requested employee.
var ErrReportNotFound = errors.New("no attempt found for employee")

// ResultStore is the read side the dashboard aggregates over.
type ResultStore interface {
	ListAttempts() ([]models.EmployeeResult, error)
	ListEmployees() ([]models.Employee, error)
	FindAttemptByEmployeeID(employeeID string) (*models.EmployeeResult, error)
}

// PerformerCache keeps the ranked top-performer snapshot warm between
// dashboard loads. Best effort only.
type PerformerCache interface {
	SetTopPerformers(scores map[string]float64) error
}

type Service struct {
	store ResultStore
	cache PerformerCache
}

func NewService(store ResultStore, cache PerformerCache) *Service {
	return &Service{store: store, cache: cache}
}

// ResultsSummary are the raw-results counters shown above the table.
type ResultsSummary struct {
	TotalEmployees  int     `json:"total_employees"`
	PassedEmployees int     `json:"passed_employees"`
	FailedEmployees int     `json:"failed_employees"`
	AverageScore    float64 `json:"average_score"`
}

type ResultsResponse struct {
	Results []models.EmployeeResult `json:"results"`
	Summary ResultsSummary          `json:"summary"`
}

// Results returns attempts newest first, optionally filtered by a search
// term matched against the name (case-insensitive) or the employee id.
// The summary counters always cover the unfiltered set, like the original
// dashboard cards.
func (s *Service) Results(search string) (*ResultsResponse, error) {
	results, err := s.store.ListAttempts()
	if err != nil {
		return nil, err
	}

	summary := ResultsSummary{TotalEmployees: len(results)}
	sum := 0.0
	for _, r := range results {
		if r.Passed {
			summary.PassedEmployees++
		} else {
			summary.FailedEmployees++
		}
		sum += r.Percentage
	}
	if len(results) > 0 {
		summary.AverageScore = sum / float64(len(results))
	}

	return &ResultsResponse{
		Results: FilterResults(results, search),
		Summary: summary,
	}, nil
}

// FilterResults applies the dashboard search to a result set.
func FilterResults(results []models.EmployeeResult, search string) []models.EmployeeResult {
	if search == "" {
		return results
	}
	needle := strings.ToLower(search)
	filtered := make([]models.EmployeeResult, 0, len(results))
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.EmployeeName), needle) || strings.Contains(r.EmployeeID, search) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

type AnalyticsResponse struct {
	Employees          []EmployeeTestData `json:"employees"`
	TopPerformers      []EmployeeTestData `json:"top_performers"`
	CompletedNotPassed []EmployeeTestData `json:"completed_not_passed"`
	PartialTests       []EmployeeTestData `json:"partial_tests"`
	NotTested          []EmployeeTestData `json:"not_tested"`
	Stats              Stats              `json:"stats"`
}

// Analytics loads everything and recomputes the classified view. Either
// fetch failing aborts the whole load; there is no partial dashboard.
func (s *Service) Analytics() (*AnalyticsResponse, error) {
	employees, err := s.store.ListEmployees()
	if err != nil {
		return nil, err
	}
	results, err := s.store.ListAttempts()
	if err != nil {
		return nil, err
	}

	data := BuildAnalytics(results, employees)
	top := TopPerformers(data)

	if s.cache != nil {
		scores := make(map[string]float64, len(top))
		for _, emp := range top {
			scores[emp.EmployeeID] = emp.AverageScore
		}
		if err := s.cache.SetTopPerformers(scores); err != nil {
			log.Printf("Error caching top performers: %v", err)
		}
	}

	return &AnalyticsResponse{
		Employees:          data,
		TopPerformers:      top,
		CompletedNotPassed: CompletedNotPassed(data),
		PartialTests:       PartialTests(data),
		NotTested:          NotTested(data),
		Stats:              BuildStats(data),
	}, nil
}

// ExportRows returns the filtered raw rows for the spreadsheet export.
func (s *Service) ExportRows(search string) ([]models.EmployeeResult, error) {
	results, err := s.store.ListAttempts()
	if err != nil {
		return nil, err
	}
	return FilterResults(results, search), nil
}

// AttemptReport loads one employee's attempt with its stored mistakes for
// the document export.
func (s *Service) AttemptReport(employeeID string) (*models.EmployeeResult, []models.IncorrectAnswer, error) {
	attempt, err := s.store.FindAttemptByEmployeeID(employeeID)
	if err != nil {
		return nil, nil, err
	}

	var mistakes []models.IncorrectAnswer
	if len(attempt.IncorrectAnswers) > 0 {
		if err := json.Unmarshal(attempt.IncorrectAnswers, &mistakes); err != nil {
			log.Printf("Error decoding stored mistakes for employee %s: %v", employeeID, err)
			mistakes = nil
		}
	}
	return attempt, mistakes, nil
}
