package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kronika/internal/db"
	"github.com/kronika/internal/logger"
	"github.com/kronika/internal/service"
)

type categoryPayload struct {
	Name db.TextInput `json:"name" binding:"required"`
}

// CreateCategory inserts a category with a derived unique slug.
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload) {
		return
	}

	category, err := a.categories.Create(payload.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			respondError(c, http.StatusConflict, "category already exists")
			return
		}
		logger.Error().Err(err).Msg("failed to create category")
		respondError(c, http.StatusInternalServerError, "failed to create category")
		return
	}

	a.flushCache(c)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "category created",
		"category": categoryView(*category, ""),
	})
}

// UpdateCategory renames a category.
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	var payload categoryPayload
	if !bindJSON(c, &payload) {
		return
	}

	category, err := a.categories.Update(uint(id), payload.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
			return
		}
		logger.Error().Err(err).Msg("failed to update category")
		respondError(c, http.StatusInternalServerError, "failed to update category")
		return
	}

	a.flushCache(c)
	c.JSON(http.StatusOK, gin.H{
		"message":  "category updated",
		"category": categoryView(*category, ""),
	})
}

// DeleteCategory removes an unused category.
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := a.categories.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, http.StatusConflict, "category is still in use")
		default:
			logger.Error().Err(err).Msg("failed to delete category")
			respondError(c, http.StatusInternalServerError, "failed to delete category")
		}
		return
	}

	a.flushCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
