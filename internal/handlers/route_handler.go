package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/helpers"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

type RouteRequest struct {
	SourceID      uuid.UUID `json:"source_id" binding:"required"`
	DestinationID uuid.UUID `json:"destination_id" binding:"required"`
	Distance      float64   `json:"distance" binding:"required,gt=0"`
}

func CreateRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var source, destination models.Airport
	if err := gormDB.Where("id = ?", req.SourceID).First(&source).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Source airport not found.")
		return
	}
	if err := gormDB.Where("id = ?", req.DestinationID).First(&destination).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Destination airport not found.")
		return
	}

	route := models.Route{
		SourceID:      source.ID,
		DestinationID: destination.ID,
		Distance:      req.Distance,
	}
	if err := gormDB.Create(&route).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create route.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Route created successfully.",
		"route_id": route.ID,
	})
}

// ListRoutes filters by source and destination airport name
// (case-insensitive substring) and by minimum distance. A non-numeric
// distance value is ignored rather than rejected.
func ListRoutes(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.Route{})
	if source := c.Query("source"); source != "" {
		query = query.
			Joins("JOIN airports AS source_airports ON source_airports.id = routes.source_id").
			Where("LOWER(source_airports.name) LIKE ?", "%"+strings.ToLower(source)+"%")
	}
	if destination := c.Query("destination"); destination != "" {
		query = query.
			Joins("JOIN airports AS destination_airports ON destination_airports.id = routes.destination_id").
			Where("LOWER(destination_airports.name) LIKE ?", "%"+strings.ToLower(destination)+"%")
	}
	if distanceStr := c.Query("distance"); distanceStr != "" {
		if distance, err := strconv.ParseFloat(distanceStr, 64); err == nil {
			query = query.Where("routes.distance >= ?", distance)
		}
	}

	var routes []models.Route
	if err := query.Preload("Source").Preload("Destination").Find(&routes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving routes.")
		return
	}

	c.JSON(http.StatusOK, routes)
}

func GetRoute(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var route models.Route
	if err := gormDB.Preload("Source").Preload("Destination").Where("id = ?", c.Param("id")).First(&route).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving route.")
		return
	}

	c.JSON(http.StatusOK, route)
}

func UpdateRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var route models.Route
	if err := gormDB.Where("id = ?", c.Param("id")).First(&route).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving route.")
		return
	}

	var source, destination models.Airport
	if err := gormDB.Where("id = ?", req.SourceID).First(&source).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Source airport not found.")
		return
	}
	if err := gormDB.Where("id = ?", req.DestinationID).First(&destination).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Destination airport not found.")
		return
	}

	route.SourceID = source.ID
	route.DestinationID = destination.ID
	route.Distance = req.Distance
	if err := gormDB.Save(&route).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update route.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route updated successfully."})
}

func DeleteRoute(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Route{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete route.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully."})
}
