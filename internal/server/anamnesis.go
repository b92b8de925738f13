package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	anamnesisdomain "github.com/TwinexTecnologia/bodybrothers/internal/anamnesis/domain"
)

func (s *Server) CreateAnamnesisModel(c *gin.Context) {
	var req anamnesisdomain.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.anamnesissvc.CreateModel(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAnamnesisModel(c *gin.Context) {
	var req anamnesisdomain.UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ModelID = strings.TrimSpace(c.Param("id"))

	resp, err := s.anamnesissvc.UpdateModel(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAnamnesisModels(c *gin.Context) {
	resp, err := s.anamnesissvc.ListModels(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAnamnesisModel(c *gin.Context) {
	resp, err := s.anamnesissvc.GetModel(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAnamnesisModel(c *gin.Context) {
	if err := s.anamnesissvc.DeleteModel(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SubmitAnamnesisResponse stores a student's answers. Re-submitting
// replaces the previous response.
func (s *Server) SubmitAnamnesisResponse(c *gin.Context) {
	var req anamnesisdomain.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ModelID = strings.TrimSpace(c.Param("id"))

	resp, err := s.anamnesissvc.SubmitResponse(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
