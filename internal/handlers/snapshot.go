package handlers

import (
	"net/http"
	"strconv"

	"launchcontrol/internal/models"
	dbconfig "launchcontrol/pkg/config"

	"github.com/gin-gonic/gin"
)

// ListPresaleSnapshots returns the worker-written stat rows for a presale
func ListPresaleSnapshots(c *gin.Context) {
	if dbconfig.DB == nil {
		c.JSON(http.StatusOK, []models.PresaleSnapshot{})
		return
	}
	address := c.Param("address")

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be 1-1000"})
			return
		}
		limit = parsed
	}

	var rows []models.PresaleSnapshot
	err := dbconfig.DB.
		Where("presale_address = ?", address).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
