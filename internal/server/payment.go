package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/providers/pdf"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/pagination"
)

func (s *Server) CreatePayment(c *gin.Context) {
	var req paymentdomain.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentsvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		StudentID string `form:"student_id"`
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentsvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		StudentID: strings.TrimSpace(query.StudentID),
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Records, "page_info": resp.PageInfo})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentsvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// UndoPayment permanently deletes the record; the projected charge becomes
// pending again.
func (s *Server) UndoPayment(c *gin.Context) {
	if err := s.paymentsvc.Undo(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) PaymentReceiptPDF(c *gin.Context) {
	record, err := s.paymentsvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	studentName := ""
	planName := ""
	if student, err := s.studentsvc.GetByID(c.Request.Context(), record.StudentID.String()); err == nil {
		studentName = student.Name
		if student.PlanID != nil {
			if plan, err := s.plansvc.GetByID(c.Request.Context(), student.PlanID.String()); err == nil {
				planName = plan.Name
			}
		}
	}

	reference := record.MonthRef
	if record.DueDate != nil {
		reference = record.DueDate.Format("2006-01-02")
	}

	doc, err := s.pdfProvider.GenerateReceipt(c.Request.Context(), pdf.ReceiptData{
		ReceiptNumber: record.ID.String(),
		StudentName:   studentName,
		PlanName:      planName,
		Reference:     reference,
		Amount:        fmt.Sprintf("R$ %.2f", record.Amount),
		Method:        record.Method,
		PaidOn:        record.PaidAt.Format("2006-01-02"),
		IssuedOn:      s.clock.Now().Format("2006-01-02"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", record.ID.String()))
	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, nil)
}
