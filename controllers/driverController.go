package controllers

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/depot_backend/models"
	"github.com/gin-gonic/gin"
)

func queryUserId(c *gin.Context) (int, bool) {
	value := c.Query("user_id")
	if value == "" {
		return 0, true
	}
	userId, err := strconv.Atoi(value)
	if err != nil || userId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return 0, false
	}
	return userId, true
}

func GetDriverAllocations(c *gin.Context) {
	userId, ok := queryUserId(c)
	if !ok {
		return
	}
	allocations, err := models.ListDriverAllocations(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": allocations})
}

func GetDriverAllocation(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	allocation, err := models.GetDriverAllocation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": allocation})
}

func CreateDriverAllocation(c *gin.Context) {
	var input models.NewDriverAllocation
	if !bindJSON(c, &input) {
		return
	}
	allocation, err := models.CreateDriverAllocation(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": allocation})
}

func UpdateDriverAllocation(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewDriverAllocation
	if !bindJSON(c, &input) {
		return
	}
	allocation, err := models.UpdateDriverAllocation(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": allocation})
}

func DeleteDriverAllocation(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	allocation, err := models.DeleteDriverAllocation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": allocation})
}

func GetDriverSales(c *gin.Context) {
	userId, ok := queryUserId(c)
	if !ok {
		return
	}
	sales, err := models.ListDriverSales(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sales})
}

func GetDriverSale(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	sale, err := models.GetDriverSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sale})
}

func CreateDriverSale(c *gin.Context) {
	var input models.NewDriverSale
	if !bindJSON(c, &input) {
		return
	}
	sale, err := models.CreateDriverSale(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": sale})
}

func UpdateDriverSale(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewDriverSale
	if !bindJSON(c, &input) {
		return
	}
	sale, err := models.UpdateDriverSale(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sale})
}

func DeleteDriverSale(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	sale, err := models.DeleteDriverSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sale})
}
