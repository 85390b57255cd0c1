package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propfolio/mls-deal-analyzer/dto"
	"github.com/propfolio/mls-deal-analyzer/service"
)

type DefaultsHandler struct {
	listingService *service.ListingService
}

func NewDefaultsHandler(listingService *service.ListingService) *DefaultsHandler {
	return &DefaultsHandler{
		listingService: listingService,
	}
}

// GetDefaults handles GET /defaults: the effective default set (shipped
// baseline overlaid with the user's saved edits).
func (h *DefaultsHandler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, dto.DefaultsResponse{
		Defaults: h.listingService.EffectiveDefaults(),
	})
}

// UpdateDefaults handles PUT /defaults: validates and persists default
// overrides, last-writer-wins.
func (h *DefaultsHandler) UpdateDefaults(c *gin.Context) {
	var request dto.UpdateDefaultsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.listingService.UpdateDefaults(request.Defaults); err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to update defaults", err)
		return
	}

	c.JSON(http.StatusOK, dto.DefaultsResponse{
		Defaults: h.listingService.EffectiveDefaults(),
	})
}

func (h *DefaultsHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "DEFAULTS_UPDATE_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
