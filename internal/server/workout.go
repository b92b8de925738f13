package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TwinexTecnologia/bodybrothers/internal/providers/pdf"
	workoutdomain "github.com/TwinexTecnologia/bodybrothers/internal/workout/domain"
)

func (s *Server) CreateWorkout(c *gin.Context) {
	var req workoutdomain.CreateProtocolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.workoutsvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateWorkout(c *gin.Context) {
	var req workoutdomain.UpdateProtocolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ProtocolID = strings.TrimSpace(c.Param("id"))

	resp, err := s.workoutsvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListWorkouts(c *gin.Context) {
	resp, err := s.workoutsvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetWorkoutByID(c *gin.Context) {
	resp, err := s.workoutsvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteWorkout(c *gin.Context) {
	if err := s.workoutsvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) AssignWorkout(c *gin.Context) {
	var req workoutdomain.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ProtocolID = strings.TrimSpace(c.Param("id"))

	resp, err := s.workoutsvc.Assign(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) WorkoutPDF(c *gin.Context) {
	protocol, err := s.workoutsvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	exercises, err := s.workoutsvc.Exercises(protocol)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	studentName := ""
	if studentID := strings.TrimSpace(c.Query("student_id")); studentID != "" {
		if student, err := s.studentsvc.GetByID(c.Request.Context(), studentID); err == nil {
			studentName = student.Name
		}
	}

	trainerName := ""
	if trainer, ok := trainerFromContext(c); ok {
		trainerName = trainer.Name
	}

	title := protocol.Name
	if protocol.Division != "" {
		title = fmt.Sprintf("%s (%s)", protocol.Name, protocol.Division)
	}

	sheet := pdf.WorkoutSheetData{
		Title:       title,
		StudentName: studentName,
		TrainerName: trainerName,
		IssuedOn:    s.clock.Now().Format("2006-01-02"),
		Notes:       protocol.Notes,
	}
	for _, ex := range exercises {
		sheet.Exercises = append(sheet.Exercises, pdf.WorkoutSheetExercise{
			Name:     ex.Name,
			Sets:     ex.Sets,
			Reps:     ex.Reps,
			Load:     ex.Load,
			RestSecs: ex.RestSec,
			Notes:    ex.Technique,
		})
	}

	doc, err := s.pdfProvider.GenerateWorkoutSheet(c.Request.Context(), sheet)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=workout-%s.pdf", protocol.ID.String()))
	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, nil)
}
