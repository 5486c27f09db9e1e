package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kronika/internal/service"
)

// Binding errors must carry the same field names the service-side
// validation uses, so the validator reports json tags instead of Go
// struct field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func respondFieldErrors(c *gin.Context, fields service.ValidationErrors) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "validation failed",
		"fields": fields,
	})
}

// bindJSON decodes the payload and maps binding failures onto the
// structured field-error shape the client expects.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(service.ValidationErrors, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, service.FieldError{
				Field:   fe.Field(),
				Message: bindingMessage(fe),
			})
		}
		respondFieldErrors(c, fields)
		return false
	}

	respondError(c, http.StatusBadRequest, "invalid request payload")
	return false
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// parsePagination reads pageNo/limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	pageNo := parsePositiveInt(c.DefaultQuery("pageNo", "1"), 1)
	limit := parsePositiveInt(c.DefaultQuery("limit", "10"), 10)
	return pageNo, limit
}
