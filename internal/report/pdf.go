package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"carwash-app-server/internal/models"
)

// Vertical position past which a new page is started, in mm.
const pageBreakY = 250.0

// Line length used when wrapping free-text notes.
const maxNoteLineLength = 80

// WriteEvaluationsPDF renders the evaluation report as a paginated A4 PDF
// and writes it to w. One block per evaluation: plate, owner, service and
// date on the left; presentation status, star rating and condition grades
// on the right; wrapped notes underneath.
func WriteEvaluationsPDF(w io.Writer, evaluations []models.Evaluation) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(0, 8, "Evaluation Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02"), "", 1, "C", false, 0, "")

	y := 35.0
	page := 1
	newPage := func() {
		pdf.AddPage()
		page++
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 6, fmt.Sprintf("Evaluation Report - page %d", page), "", 1, "C", false, 0, "")
		y = 20.0
	}

	for _, evaluation := range evaluations {
		if y > pageBreakY {
			newPage()
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(40, 40, 40)
		pdf.Text(20, y, tr("Vehicle: "+evaluation.Plate))

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(80, 80, 80)
		pdf.Text(20, y+7, tr("Owner: "+evaluation.CustomerName))
		pdf.Text(20, y+14, tr("Service: "+evaluation.Service))
		pdf.Text(20, y+21, tr("Date: "+evaluation.AppointmentDate))

		if evaluation.Presented {
			pdf.SetTextColor(0, 128, 0)
			pdf.Text(100, y, "Status: presented")
			pdf.SetTextColor(80, 80, 80)
			if evaluation.Rating > 0 {
				pdf.Text(100, y+7, "Rating: "+starRating(evaluation.Rating))
			}
			if evaluation.ACCondition != "" {
				pdf.Text(100, y+14, tr("A/C: "+evaluation.ACCondition))
			}
			if evaluation.TireCondition != "" {
				pdf.Text(100, y+21, tr("Tires: "+evaluation.TireCondition))
			}

			if evaluation.Notes != "" {
				pdf.SetTextColor(40, 40, 40)
				pdf.Text(20, y+28, "Notes:")
				noteY := y + 35
				for _, line := range wrapText(evaluation.Notes, maxNoteLineLength) {
					pdf.Text(20, noteY, tr(line))
					noteY += 6
				}
				y = noteY + 4
			} else {
				y += 35
			}
		} else {
			pdf.SetTextColor(200, 0, 0)
			pdf.Text(100, y, "Status: no-show")
			y += 35
		}

		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(15, y-5, 195, y-5)
		y += 10
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.Text(20, 285, fmt.Sprintf("Total records: %d", len(evaluations)))

	return pdf.Output(w)
}

// starRating renders a 1-5 rating as filled and empty star marks.
func starRating(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("*", rating) + strings.Repeat("-", 5-rating)
}

// wrapText splits text into lines no longer than maxLen, breaking on words.
func wrapText(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > maxLen {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
