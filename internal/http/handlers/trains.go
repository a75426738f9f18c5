package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/trains/search?from=&to=&date=
func SearchTrains(c *gin.Context) {
	trains, err := querySvc.SearchTrains(
		c.Query("from"),
		c.Query("to"),
		c.Query("date"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains, "count": len(trains)})
}

// GET /api/trains/:trainNumber/availability?date=
func GetAvailability(c *gin.Context) {
	availability, err := querySvc.GetAvailability(
		c.Param("trainNumber"),
		c.Query("date"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trainNumber":  c.Param("trainNumber"),
		"date":         c.Query("date"),
		"availability": availability,
	})
}
