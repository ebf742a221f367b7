package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// UUIDParam parses a :id style path parameter.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// Pagination reads page/limit query params with the listing defaults.
func Pagination(c *gin.Context) (page, limit int, err error) {
	page, err = StringToInt(c.DefaultQuery("page", "1"))
	if err != nil {
		return 0, 0, err
	}
	limit, err = StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil {
		return 0, 0, err
	}
	if page < 1 || limit < 1 {
		return 0, 0, fmt.Errorf("page and limit must be positive")
	}
	return page, limit, nil
}
