package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/depot_backend/models"
	"github.com/gin-gonic/gin"
)

func collectionFilter(c *gin.Context) (models.CollectionFilter, bool) {
	var filter models.CollectionFilter

	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseCollectionStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return filter, false
		}
		filter.Status = parsed
	}
	if collectionType := c.Query("type"); collectionType != "" {
		parsed, err := models.ParseCollectionType(collectionType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return filter, false
		}
		filter.Type = parsed
	}
	return filter, true
}

func GetCollections(c *gin.Context) {
	filter, ok := collectionFilter(c)
	if !ok {
		return
	}
	records, err := models.GetCollections(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func GetCollectionSummary(c *gin.Context) {
	filter, ok := collectionFilter(c)
	if !ok {
		return
	}
	summary, err := models.GetCollectionSummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

type recognizeInput struct {
	Notes string `json:"notes"`
}

func RecognizeCollection(c *gin.Context) {
	id := c.Param("id")

	var input recognizeInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}

	record, err := models.RecognizeCollection(c.Request.Context(), id, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}
