package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/propfolio/mls-deal-analyzer/dto"
	"github.com/propfolio/mls-deal-analyzer/service"
)

type PropertyHandler struct {
	listingService *service.ListingService
}

func NewPropertyHandler(listingService *service.ListingService) *PropertyHandler {
	return &PropertyHandler{
		listingService: listingService,
	}
}

// ExtractListing handles POST /listings/extract: multipart PDF upload.
func (h *PropertyHandler) ExtractListing(c *gin.Context) {
	log.Println("Received listing extraction request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}

	response, err := h.listingService.AnalyzePDF(fileHeader)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Failed to analyze listing", err)
		return
	}

	log.Printf("Listing extraction completed for %s (%d fields)", fileHeader.Filename, len(response.Extracted))
	c.JSON(http.StatusOK, response)
}

// AnalyzeText handles POST /listings/analyze: raw listing text.
func (h *PropertyHandler) AnalyzeText(c *gin.Context) {
	var request dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, h.listingService.AnalyzeText(request.Text))
}

// Calculate handles POST /listings/calculate: a projection pass over
// caller-supplied field values.
func (h *PropertyHandler) Calculate(c *gin.Context) {
	var request dto.CalculateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, h.listingService.Recalculate(request.Inputs))
}

// ListProperties handles GET /properties.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	summaries, err := h.listingService.Properties()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to list properties", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": summaries})
}

// GetProperty handles GET /properties/:id.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	record, err := h.listingService.Property(id)
	if err != nil {
		h.sendNotFoundOrError(c, "Failed to fetch property", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// SaveProperty handles PUT /properties/:id: replaces user inputs and
// recalculates financials.
func (h *PropertyHandler) SaveProperty(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	var request dto.SavePropertyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record, err := h.listingService.SaveProperty(id, request.FileName, request.UserInput)
	if err != nil {
		h.sendNotFoundOrError(c, "Failed to save property", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteProperty handles DELETE /properties/:id.
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	if err := h.listingService.DeleteProperty(id); err != nil {
		h.sendNotFoundOrError(c, "Failed to delete property", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PropertyHandler) propertyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid property id", err)
		return 0, false
	}
	return id, true
}

func (h *PropertyHandler) sendNotFoundOrError(c *gin.Context, message string, err error) {
	if errors.Is(err, dto.ErrPropertyNotFound) {
		h.sendCodedError(c, http.StatusNotFound, "PROPERTY_NOT_FOUND", "Property not found", err)
		return
	}
	h.sendError(c, http.StatusInternalServerError, message, err)
}

// sendError sends a structured error response
func (h *PropertyHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	h.sendCodedError(c, statusCode, "ANALYSIS_FAILED", message, err)
}

func (h *PropertyHandler) sendCodedError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
