package admin

import (
	"sort"
	"time"

	"security-quiz/internal/models"
)

// RequiredTests is how many attempts count as a completed program. The
// all_passed flag itself is count-free; the >= 3 gate is applied here at
// classification time.
const RequiredTests = 3

// TestSummary is one surviving attempt row, numbered chronologically.
type TestSummary struct {
	TestNumber int       `json:"test_number"`
	Score      int       `json:"score"`
	Percentage float64   `json:"percentage"`
	Passed     bool      `json:"passed"`
	CreatedAt  time.Time `json:"created_at"`
}

// EmployeeTestData is the per-employee rollup the dashboard ranks. It is
// recomputed whole on every load, never maintained incrementally.
type EmployeeTestData struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Tests        []TestSummary `json:"tests"`
	TotalTests   int           `json:"total_tests"`
	AllPassed    bool          `json:"all_passed"`
	AverageScore float64       `json:"average_score"`
}

// Stats are the dashboard counters, recomputed from the classified list.
type Stats struct {
	AllTestsPassed     int     `json:"all_tests_passed"`
	CompletedNotPassed int     `json:"completed_not_passed"`
	PartialTests       int     `json:"partial_tests"`
	TotalEmployees     int     `json:"total_employees"`
	AveragePerformance float64 `json:"average_performance"`
}

// BuildAnalytics turns raw attempt rows and the employee directory into the
// ranked, classified dashboard list.
//
// The store upserts one row per employee, but rows written before that
// constraint existed can still be plural, so grouping and duplicate removal
// stay in place defensively. Only true duplicates — identical score,
// percentage and timestamp — collapse; distinct historical attempts are all
// kept and numbered.
func BuildAnalytics(results []models.EmployeeResult, employees []models.Employee) []EmployeeTestData {
	grouped := make(map[string][]models.EmployeeResult)
	order := make([]string, 0, len(results))
	for _, r := range results {
		if _, seen := grouped[r.EmployeeID]; !seen {
			order = append(order, r.EmployeeID)
		}
		grouped[r.EmployeeID] = append(grouped[r.EmployeeID], r)
	}

	directory := make(map[string]models.Employee, len(employees))
	for _, e := range employees {
		directory[e.EmployeeID] = e
	}

	data := make([]EmployeeTestData, 0, len(grouped)+len(employees))
	for _, employeeID := range order {
		rows := grouped[employeeID]

		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		})
		rows = dropTrueDuplicates(rows)

		tests := make([]TestSummary, len(rows))
		sum := 0.0
		allPassed := true
		for i, row := range rows {
			tests[i] = TestSummary{
				TestNumber: i + 1,
				Score:      row.Score,
				Percentage: row.Percentage,
				Passed:     row.Passed,
				CreatedAt:  row.CreatedAt,
			}
			sum += row.Percentage
			if !row.Passed {
				allPassed = false
			}
		}

		average := 0.0
		if len(tests) > 0 {
			average = sum / float64(len(tests))
		}

		data = append(data, EmployeeTestData{
			EmployeeID:   employeeID,
			EmployeeName: resolveName(employeeID, rows, directory),
			Tests:        tests,
			TotalTests:   len(tests),
			AllPassed:    allPassed,
			AverageScore: average,
		})
	}

	// Employees with no attempts at all still show up, at the bottom tier.
	for _, e := range employees {
		if _, tested := grouped[e.EmployeeID]; tested {
			continue
		}
		data = append(data, EmployeeTestData{
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.FullName(),
			Tests:        []TestSummary{},
			TotalTests:   0,
			AllPassed:    false,
			AverageScore: 0,
		})
	}

	sort.SliceStable(data, func(i, j int) bool {
		a, b := data[i], data[j]
		aFull := a.AllPassed && a.TotalTests >= RequiredTests
		bFull := b.AllPassed && b.TotalTests >= RequiredTests
		if aFull != bFull {
			return aFull
		}
		aCompleted := a.TotalTests >= RequiredTests
		bCompleted := b.TotalTests >= RequiredTests
		if aCompleted != bCompleted {
			return aCompleted
		}
		return a.AverageScore > b.AverageScore
	})

	return data
}

func dropTrueDuplicates(rows []models.EmployeeResult) []models.EmployeeResult {
	unique := rows[:0:0]
	for _, row := range rows {
		duplicate := false
		for _, kept := range unique {
			if kept.Score == row.Score && kept.Percentage == row.Percentage && kept.CreatedAt.Equal(row.CreatedAt) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, row)
		}
	}
	return unique
}

func resolveName(employeeID string, rows []models.EmployeeResult, directory map[string]models.Employee) string {
	if employee, ok := directory[employeeID]; ok {
		return employee.FullName()
	}
	if len(rows) > 0 && rows[0].EmployeeName != "" {
		return rows[0].EmployeeName
	}
	return employeeID
}

// BuildStats recomputes the bucket counters and the overall average over
// employees who took at least one test.
func BuildStats(data []EmployeeTestData) Stats {
	stats := Stats{TotalEmployees: len(data)}
	testedSum := 0.0
	testedCount := 0
	for _, emp := range data {
		switch {
		case emp.AllPassed && emp.TotalTests >= RequiredTests:
			stats.AllTestsPassed++
		case emp.TotalTests >= RequiredTests:
			stats.CompletedNotPassed++
		case emp.TotalTests > 0:
			stats.PartialTests++
		}
		if emp.TotalTests > 0 {
			testedSum += emp.AverageScore
			testedCount++
		}
	}
	if testedCount > 0 {
		stats.AveragePerformance = testedSum / float64(testedCount)
	}
	return stats
}

// TopPerformers re-ranks the fully-passed bucket by average score and keeps
// the first ten.
func TopPerformers(data []EmployeeTestData) []EmployeeTestData {
	top := make([]EmployeeTestData, 0)
	for _, emp := range data {
		if emp.AllPassed && emp.TotalTests >= RequiredTests {
			top = append(top, emp)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].AverageScore > top[j].AverageScore
	})
	if len(top) > 10 {
		top = top[:10]
	}
	return top
}

// CompletedNotPassed lists employees who finished all tests but failed one
// or more.
func CompletedNotPassed(data []EmployeeTestData) []EmployeeTestData {
	out := make([]EmployeeTestData, 0)
	for _, emp := range data {
		if emp.TotalTests >= RequiredTests && !emp.AllPassed {
			out = append(out, emp)
		}
	}
	return out
}

// PartialTests lists employees who started but did not finish the program.
func PartialTests(data []EmployeeTestData) []EmployeeTestData {
	out := make([]EmployeeTestData, 0)
	for _, emp := range data {
		if emp.TotalTests > 0 && emp.TotalTests < RequiredTests {
			out = append(out, emp)
		}
	}
	return out
}

// NotTested lists employees with no attempts at all.
func NotTested(data []EmployeeTestData) []EmployeeTestData {
	out := make([]EmployeeTestData, 0)
	for _, emp := range data {
		if emp.TotalTests == 0 {
			out = append(out, emp)
		}
	}
	return out
}
