package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	collector StatsCollector
}

func NewStatsController(collector StatsCollector) *StatsController {
	return &StatsController{collector: collector}
}

func (controller *StatsController) GetStats(c *gin.Context) {
	stats, err := controller.collector.Collect(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
