package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/depot_backend/config"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body and writes the 400 response itself on
// failure, with validator errors flattened into readable messages.
func bindJSON(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(validationErrors)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondError maps model-layer errors onto status codes. Missing records
// are 404, request-caused failures are 400 with their message, and anything
// else is an infrastructure fault: logged, and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var reqErr *utils.RequestError
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &reqErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Message})
	default:
		config.LogError(config.GetLogger(), "helpers.go", "respondError", "request failed", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
