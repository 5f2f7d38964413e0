package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/booknest/booknest/internal/entities"
)

type SeriesController struct {
	store SeriesStore
}

func NewSeriesController(store SeriesStore) *SeriesController {
	return &SeriesController{store: store}
}

func (controller *SeriesController) ListSeries(c *gin.Context) {
	all, err := controller.store.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (controller *SeriesController) GetSeries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := controller.store.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (controller *SeriesController) CreateSeries(c *gin.Context) {
	var draft entities.SeriesDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	s, err := controller.store.Create(draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (controller *SeriesController) UpdateSeries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p entities.SeriesPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	s, err := controller.store.Update(id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (controller *SeriesController) DeleteSeries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := controller.store.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
