package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/middleware"
	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// queryInt parses an optional integer query parameter, falling back to def
// when the parameter is absent.
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", name))
	}
	return value, nil
}

// queryIntPtr parses an optional integer query parameter into a pointer,
// nil when absent.
func queryIntPtr(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", name))
	}
	return &value, nil
}

// filterFromQuery assembles a record filter from the common query parameters.
// A bare "year" pins both bounds of the range.
func filterFromQuery(c *gin.Context) (models.Filter, error) {
	var filter models.Filter

	year, err := queryIntPtr(c, "year")
	if err != nil {
		return filter, err
	}
	if year != nil {
		filter.YearFrom = year
		filter.YearTo = year
	}
	if filter.YearFrom == nil {
		if filter.YearFrom, err = queryIntPtr(c, "year_from"); err != nil {
			return filter, err
		}
	}
	if filter.YearTo == nil {
		if filter.YearTo, err = queryIntPtr(c, "year_to"); err != nil {
			return filter, err
		}
	}
	if filter.Semester, err = queryIntPtr(c, "semester"); err != nil {
		return filter, err
	}
	filter.Department = strings.TrimSpace(c.Query("department"))
	filter.Subject = strings.TrimSpace(c.Query("subject"))
	filter.PassFail = strings.TrimSpace(c.Query("pass_fail"))
	filter.Performance = strings.TrimSpace(c.Query("performance"))
	return filter, nil
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 1000
)

// pageFromQuery parses limit/offset pagination parameters with bounds.
func pageFromQuery(c *gin.Context) (limit, offset int, err error) {
	limit, err = queryInt(c, "limit", defaultPageLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset, err = queryInt(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}

// pageBounds clips a [limit, offset) window to the slice length.
func pageBounds(total, limit, offset int) (lo, hi int) {
	if offset >= total {
		return total, total
	}
	hi = offset + limit
	if hi > total {
		hi = total
	}
	return offset, hi
}
