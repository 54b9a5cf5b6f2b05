package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"carwash-app-server/internal/middleware"
	"carwash-app-server/internal/report"
	"carwash-app-server/internal/store"
	"carwash-app-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler renders evaluation reports.
type ReportHandler struct {
	Evaluations *store.Evaluations
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(evaluations *store.Evaluations) *ReportHandler {
	return &ReportHandler{Evaluations: evaluations}
}

// ExportEvaluationsPDF renders the (optionally filtered) evaluations as a
// paginated PDF and streams it as an attachment.
func (h *ReportHandler) ExportEvaluationsPDF(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	evaluations, err := h.Evaluations.ByOwnerWithFilters(ownerID, filters)
	if err != nil {
		log.Printf("report query failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch evaluations")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteEvaluationsPDF(&buf, evaluations); err != nil {
		log.Printf("report rendering failed: %v", err)
		utils.InternalServerError(c, "Failed to render report")
		return
	}

	filename := fmt.Sprintf("evaluations-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
