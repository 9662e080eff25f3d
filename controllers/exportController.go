package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/depot_backend/config"
	"bitbucket.org/mmdatafocus/depot_backend/models"
	"bitbucket.org/mmdatafocus/depot_backend/models/exports"
	"github.com/gin-gonic/gin"
)

// ExportEntity serves `GET /exports/:entity?format=csv|xlsx` as a file
// download. Each entity has its own adapter, sheet name and filename
// prefix; the serialization pipeline is shared.
func ExportEntity(c *gin.Context) {

	format := exports.FormatCsv
	if value := c.Query("format"); value != "" {
		parsed, err := exports.ParseFormat(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		format = parsed
	}

	ctx := c.Request.Context()

	var rows []exports.Row
	var sheetName, prefix string
	var loadErr error

	switch c.Param("entity") {
	case "orders":
		orders, err := models.GetAllOrders(ctx)
		rows, sheetName, prefix, loadErr = exports.OrderRows(orders), exports.OrdersSheetName, exports.OrdersFilePrefix, err
	case "products":
		products, err := models.GetAllProducts(ctx)
		rows, sheetName, prefix, loadErr = exports.ProductRows(products), exports.ProductsSheetName, exports.ProductsFilePrefix, err
	case "customers":
		customers, err := models.GetAllCustomers(ctx)
		rows, sheetName, prefix, loadErr = exports.CustomerRows(customers), exports.CustomersSheetName, exports.CustomersFilePrefix, err
	case "suppliers":
		suppliers, err := models.GetAllSuppliers(ctx)
		rows, sheetName, prefix, loadErr = exports.SupplierRows(suppliers), exports.SuppliersSheetName, exports.SuppliersFilePrefix, err
	case "driver-allocations":
		allocations, err := models.ListDriverAllocations(ctx, 0)
		rows, sheetName, prefix, loadErr = exports.DriverAllocationRows(allocations), exports.DriverAllocationsSheetName, exports.DriverAllocationsFilePrefix, err
	case "driver-sales":
		sales, err := models.ListDriverSales(ctx, 0)
		rows, sheetName, prefix, loadErr = exports.DriverSaleRows(sales), exports.DriverSalesSheetName, exports.DriverSalesFilePrefix, err
	case "users":
		users, err := models.GetAllUsers(ctx)
		rows, sheetName, prefix, loadErr = exports.UserRows(users), exports.UsersSheetName, exports.UsersFilePrefix, err
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown export entity"})
		return
	}
	if loadErr != nil {
		respondError(c, loadErr)
		return
	}

	artifact, err := exports.Export(rows, format, sheetName)
	if err != nil {
		if errors.Is(err, exports.ErrNoRows) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no data to export"})
			return
		}
		config.LogError(config.GetLogger(), "exportController.go", "ExportEntity", "serialization failed", prefix, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	filename := exports.Filename(prefix, format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, format.ContentType(), artifact)
}
