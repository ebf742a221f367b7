package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/helpers"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

type AirplaneTypeRequest struct {
	Brand             string `json:"brand" binding:"required"`
	Model             string `json:"model" binding:"required"`
	DefaultRows       int    `json:"default_rows" binding:"required,gt=0"`
	DefaultSeatsInRow int    `json:"default_seats_in_row" binding:"required,gt=0"`
}

func CreateAirplaneType(c *gin.Context) {
	var req AirplaneTypeRequest
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

	airplaneType := models.AirplaneType{
		Brand:             req.Brand,
		Model:             req.Model,
		DefaultRows:       req.DefaultRows,
		DefaultSeatsInRow: req.DefaultSeatsInRow,
	}
	if err := gormDB.Create(&airplaneType).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airplane type.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Airplane type created successfully.",
		"type_id": airplaneType.ID,
	})
}

// ListAirplaneTypes filters by case-insensitive substring on brand.
func ListAirplaneTypes(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.AirplaneType{})
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(brand)+"%")
	}

	var airplaneTypes []models.AirplaneType
	if err := query.Order("brand").Find(&airplaneTypes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane types.")
		return
	}

	c.JSON(http.StatusOK, airplaneTypes)
}

func GetAirplaneType(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airplaneType).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane type.")
		return
	}

	c.JSON(http.StatusOK, airplaneType)
}

func UpdateAirplaneType(c *gin.Context) {
	var req AirplaneTypeRequest
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

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airplaneType).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane type.")
		return
	}

	airplaneType.Brand = req.Brand
	airplaneType.Model = req.Model
	airplaneType.DefaultRows = req.DefaultRows
	airplaneType.DefaultSeatsInRow = req.DefaultSeatsInRow
	if err := gormDB.Save(&airplaneType).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airplane type.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airplane type updated successfully."})
}

func DeleteAirplaneType(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.AirplaneType{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airplane type.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airplane type deleted successfully."})
}

type AirplaneRequest struct {
	Name           string      `json:"name" binding:"required"`
	AirplaneTypeID uuid.UUID   `json:"airplane_type_id" binding:"required"`
	CrewIDs        []uuid.UUID `json:"crew_ids"`
}

// CreateAirplane copies the seat grid from the airplane type's defaults;
// rows and seats_in_row cannot be supplied by the caller.
func CreateAirplane(c *gin.Context) {
	var req AirplaneRequest
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

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", req.AirplaneTypeID).First(&airplaneType).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Airplane type not found.")
		return
	}

	var crew []models.Crew
	if len(req.CrewIDs) > 0 {
		if err := gormDB.Where("id IN ?", req.CrewIDs).Find(&crew).Error; err != nil || len(crew) != len(req.CrewIDs) {
			helpers.RespondWithError(c, http.StatusBadRequest, "One or more crew members not found.")
			return
		}
	}

	airplane := models.Airplane{
		Name:           req.Name,
		Rows:           airplaneType.DefaultRows,
		SeatsInRow:     airplaneType.DefaultSeatsInRow,
		AirplaneTypeID: airplaneType.ID,
		Crew:           crew,
	}
	if err := gormDB.Create(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airplane.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Airplane created successfully.",
		"airplane_id": airplane.ID,
	})
}

func ListAirplanes(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var airplanes []models.Airplane
	err := gormDB.Preload("AirplaneType").Preload("Crew.Position").Order("name").Find(&airplanes).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplanes.")
		return
	}

	c.JSON(http.StatusOK, airplanes)
}

func GetAirplane(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var airplane models.Airplane
	err := gormDB.Preload("AirplaneType").Preload("Crew.Position").Where("id = ?", c.Param("id")).First(&airplane).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"airplane": airplane,
		"capacity": airplane.Capacity(),
	})
}

// UpdateAirplane changes the name and assigned crew. The seat grid stays
// frozen so sold tickets can never fall outside the physical airplane.
func UpdateAirplane(c *gin.Context) {
	var req AirplaneRequest
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

	var airplane models.Airplane
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airplane).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	var crew []models.Crew
	if len(req.CrewIDs) > 0 {
		if err := gormDB.Where("id IN ?", req.CrewIDs).Find(&crew).Error; err != nil || len(crew) != len(req.CrewIDs) {
			helpers.RespondWithError(c, http.StatusBadRequest, "One or more crew members not found.")
			return
		}
	}

	airplane.Name = req.Name
	if err := gormDB.Save(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airplane.")
		return
	}

	if err := gormDB.Model(&airplane).Association("Crew").Replace(crew); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error updating crew assignment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airplane updated successfully."})
}

func DeleteAirplane(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Airplane{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airplane.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airplane deleted successfully."})
}
