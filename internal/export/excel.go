package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"security-quiz/internal/models"
)

// SheetName is the single results sheet in exported workbooks.
const SheetName = "نتائج الاختبار"

// resultHeaders match the dashboard table column order.
var resultHeaders = []string{
	"الاسم",
	"الرقم الوظيفي",
	"الدرجة",
	"النسبة المئوية",
	"النتيجة",
	"التاريخ",
	"الوقت",
}

const (
	passedLabel = "نجح"
	failedLabel = "لم ينجح"
)

// ResultsWorkbook builds the spreadsheet export of the given (already
// filtered) rows. Percentages are formatted to one decimal with a trailing
// percent sign, scores as "x/total".
func ResultsWorkbook(results []models.EmployeeResult, totalQuestions int) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	for col, header := range resultHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, result := range results {
		label := failedLabel
		if result.Passed {
			label = passedLabel
		}
		row := []interface{}{
			result.EmployeeName,
			result.EmployeeID,
			fmt.Sprintf("%d/%d", result.Score, totalQuestions),
			FormatPercentage(result.Percentage),
			label,
			result.CreatedAt.Format("2006-01-02"),
			result.CreatedAt.Format("15:04:05"),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ResultsFilename embeds the export date.
func ResultsFilename(now time.Time) string {
	return fmt.Sprintf("نتائج_اختبار_أمن_المعلومات_%s.xlsx", now.Format("2006-01-02"))
}

// FormatPercentage renders a percentage the way every surface displays it:
// one decimal place with a trailing percent sign.
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
