package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/helpers"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

type CrewPositionRequest struct {
	Position string `json:"position" binding:"required,min=2"`
}

func CreateCrewPosition(c *gin.Context) {
	var req CrewPositionRequest
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

	position := models.CrewPosition{Position: req.Position}
	if err := gormDB.Create(&position).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			helpers.RespondWithError(c, http.StatusConflict, "Crew position already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create crew position.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Crew position created successfully.",
		"position_id": position.ID,
	})
}

func ListCrewPositions(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var positions []models.CrewPosition
	if err := gormDB.Order("position").Find(&positions).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew positions.")
		return
	}

	c.JSON(http.StatusOK, positions)
}

func GetCrewPosition(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var position models.CrewPosition
	if err := gormDB.Where("id = ?", c.Param("id")).First(&position).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Crew position not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew position.")
		return
	}

	c.JSON(http.StatusOK, position)
}

func UpdateCrewPosition(c *gin.Context) {
	var req CrewPositionRequest
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

	var position models.CrewPosition
	if err := gormDB.Where("id = ?", c.Param("id")).First(&position).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Crew position not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew position.")
		return
	}

	position.Position = req.Position
	if err := gormDB.Save(&position).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update crew position.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew position updated successfully."})
}

func DeleteCrewPosition(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.CrewPosition{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete crew position.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Crew position not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew position deleted successfully."})
}

type CrewRequest struct {
	FirstName  string    `json:"first_name" binding:"required"`
	LastName   string    `json:"last_name" binding:"required"`
	PositionID uuid.UUID `json:"position_id" binding:"required"`
}

func CreateCrew(c *gin.Context) {
	var req CrewRequest
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

	var position models.CrewPosition
	if err := gormDB.Where("id = ?", req.PositionID).First(&position).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Crew position not found.")
		return
	}

	crew := models.Crew{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PositionID: position.ID,
	}
	if err := gormDB.Create(&crew).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create crew member.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Crew member created successfully.",
		"crew_id": crew.ID,
	})
}

func ListCrew(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var crew []models.Crew
	if err := gormDB.Preload("Position").Order("first_name").Find(&crew).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew.")
		return
	}

	c.JSON(http.StatusOK, crew)
}

func GetCrew(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var crew models.Crew
	if err := gormDB.Preload("Position").Where("id = ?", c.Param("id")).First(&crew).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew member.")
		return
	}

	c.JSON(http.StatusOK, crew)
}

func UpdateCrew(c *gin.Context) {
	var req CrewRequest
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

	var crew models.Crew
	if err := gormDB.Where("id = ?", c.Param("id")).First(&crew).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew member.")
		return
	}

	var position models.CrewPosition
	if err := gormDB.Where("id = ?", req.PositionID).First(&position).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Crew position not found.")
		return
	}

	crew.FirstName = req.FirstName
	crew.LastName = req.LastName
	crew.PositionID = position.ID
	if err := gormDB.Save(&crew).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update crew member.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew member updated successfully."})
}

func DeleteCrew(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Crew{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete crew member.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew member deleted successfully."})
}
