package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"security-quiz/internal/export"
	"security-quiz/internal/quiz"
)

type Handler struct {
	service        *Service
	totalQuestions int
}

func NewHandler(service *Service, totalQuestions int) *Handler {
	return &Handler{service: service, totalQuestions: totalQuestions}
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Results(r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, "Failed to load results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Analytics()
	if err != nil {
		http.Error(w, "Failed to load analytics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ExportRows(r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, "Failed to load results", http.StatusInternalServerError)
		return
	}

	workbook, err := export.ResultsWorkbook(rows, h.totalQuestions)
	if err != nil {
		log.Printf("Error building results workbook: %v", err)
		http.Error(w, "Failed to build export", http.StatusInternalServerError)
		return
	}

	filename := export.ResultsFilename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	setAttachmentFilename(w, filename)
	if err := workbook.Write(w); err != nil {
		log.Printf("Error writing results workbook: %v", err)
	}
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeID"]

	attempt, mistakes, err := h.service.AttemptReport(employeeID)
	if err != nil {
		if errors.Is(err, quiz.ErrAttemptNotFound) {
			http.Error(w, "No attempt found for employee", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load attempt", http.StatusInternalServerError)
		return
	}

	data := export.ReportData{
		EmployeeName:     attempt.EmployeeName,
		EmployeeID:       attempt.EmployeeID,
		Score:            attempt.Score,
		TotalQuestions:   h.totalQuestions,
		Percentage:       attempt.Percentage,
		Passed:           attempt.Passed,
		TimeTaken:        attempt.TimeTaken,
		CreatedAt:        attempt.CreatedAt,
		IncorrectAnswers: mistakes,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	setAttachmentFilename(w, export.ReportFilename(employeeID))
	if err := export.WriteReport(w, data); err != nil {
		log.Printf("Error writing report for employee %s: %v", employeeID, err)
	}
}

// setAttachmentFilename writes a Content-Disposition that survives the
// Arabic filenames (RFC 5987 encoding).
func setAttachmentFilename(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
}
