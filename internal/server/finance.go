package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetMonthlyOverview reports expected versus received amounts for a month.
// Without a month parameter the current month is used.
func (s *Server) GetMonthlyOverview(c *gin.Context) {
	month := strings.TrimSpace(c.Query("month"))

	resp, err := s.financesvc.MonthlyOverview(c.Request.Context(), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
