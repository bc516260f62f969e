package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func dashboardHandler(stats StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		totals, err := stats.Totals(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"totals": totals})
	}
}
