package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/helpers"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

type AirportRequest struct {
	Name           string `json:"name" binding:"required"`
	Code           string `json:"code" binding:"required,len=3,alpha"`
	ClosestBigCity string `json:"closest_big_city" binding:"required"`
}

func CreateAirport(c *gin.Context) {
	var req AirportRequest
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

	airport := models.Airport{
		Name:           req.Name,
		Code:           strings.ToUpper(req.Code),
		ClosestBigCity: req.ClosestBigCity,
	}
	if err := gormDB.Create(&airport).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			helpers.RespondWithError(c, http.StatusConflict, "Airport with this name or code already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airport.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Airport created successfully.",
		"airport_id": airport.ID,
	})
}

// ListAirports narrows by optional case-insensitive substring filters on
// name, code and closest_big_city.
func ListAirports(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.Airport{})
	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if code := c.Query("code"); code != "" {
		query = query.Where("LOWER(code) LIKE ?", "%"+strings.ToLower(code)+"%")
	}
	if city := c.Query("closest_big_city"); city != "" {
		query = query.Where("LOWER(closest_big_city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}

	var airports []models.Airport
	if err := query.Order("name").Find(&airports).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airports.")
		return
	}

	c.JSON(http.StatusOK, airports)
}

func GetAirport(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var airport models.Airport
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airport).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airport.")
		return
	}

	c.JSON(http.StatusOK, airport)
}

func UpdateAirport(c *gin.Context) {
	var req AirportRequest
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

	var airport models.Airport
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airport).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airport.")
		return
	}

	airport.Name = req.Name
	airport.Code = strings.ToUpper(req.Code)
	airport.ClosestBigCity = req.ClosestBigCity
	if err := gormDB.Save(&airport).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			helpers.RespondWithError(c, http.StatusConflict, "Airport with this name or code already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airport.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airport updated successfully."})
}

// DeleteAirport cascades into routes, their flights and sold tickets.
func DeleteAirport(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Airport{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airport.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airport deleted successfully."})
}
