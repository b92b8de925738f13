package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authdomain "github.com/TwinexTecnologia/bodybrothers/internal/auth/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	maxAge := int(time.Until(result.Session.ExpiresAt).Seconds())
	s.sessions.Set(c, result.Session.Token, maxAge)

	c.JSON(http.StatusOK, gin.H{"data": result.Trainer})
}

func (s *Server) Logout(c *gin.Context) {
	token := s.sessions.ReadToken(c)
	if token != "" {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	trainer, ok := trainerFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trainer})
}
