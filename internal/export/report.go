package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"security-quiz/internal/models"
)

// ReportData is everything the single-attempt document shows.
type ReportData struct {
	EmployeeName     string
	EmployeeID       string
	Score            int
	TotalQuestions   int
	Percentage       float64
	Passed           bool
	TimeTaken        int
	CreatedAt        time.Time
	IncorrectAnswers []models.IncorrectAnswer
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"percent": FormatPercentage,
	"date":    func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"minutes": formatDuration,
}).Parse(`<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
<meta charset="utf-8">
<title>تقرير اختبار أمن المعلومات - {{.EmployeeName}}</title>
<style>
body { font-family: "Segoe UI", Tahoma, sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; border-bottom: 2px solid #6b46c1; padding-bottom: .5rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: .5rem .75rem; text-align: right; }
th { background: #f3f0fa; }
.passed { color: #187a3c; font-weight: bold; }
.failed { color: #b42318; font-weight: bold; }
</style>
</head>
<body>
<h1>تقرير اختبار أمن المعلومات وحماية البيانات</h1>
<table>
<tr><th>اسم الموظف</th><td>{{.EmployeeName}}</td></tr>
<tr><th>الرقم الوظيفي</th><td>{{.EmployeeID}}</td></tr>
<tr><th>الدرجة</th><td>{{.Score}}/{{.TotalQuestions}}</td></tr>
<tr><th>النسبة المئوية</th><td>{{percent .Percentage}}</td></tr>
<tr><th>النتيجة</th><td>{{if .Passed}}<span class="passed">نجح</span>{{else}}<span class="failed">لم ينجح</span>{{end}}</td></tr>
<tr><th>الوقت المستغرق</th><td>{{minutes .TimeTaken}}</td></tr>
<tr><th>تاريخ الاختبار</th><td>{{date .CreatedAt}}</td></tr>
</table>
{{if .IncorrectAnswers}}
<h1>الإجابات الخاطئة</h1>
<table>
<tr><th>السؤال</th><th>إجابة الموظف</th><th>الإجابة الصحيحة</th></tr>
{{range .IncorrectAnswers}}
<tr><td>{{.Question}}</td><td>{{.SelectedText}}</td><td>{{.CorrectText}}</td></tr>
{{end}}
</table>
{{else}}
<p>لا توجد إجابات خاطئة.</p>
{{end}}
</body>
</html>
`))

// WriteReport renders the attempt document.
func WriteReport(w io.Writer, data ReportData) error {
	return reportTemplate.Execute(w, data)
}

// ReportFilename embeds the employee id.
func ReportFilename(employeeID string) string {
	return fmt.Sprintf("تقرير_%s.html", employeeID)
}

func formatDuration(totalSeconds int) string {
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
