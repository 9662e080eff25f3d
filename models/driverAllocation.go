package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/depot_backend/config"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/shopspring/decimal"
)

// DriverAllocation records stock handed to a driver for a day's route.
type DriverAllocation struct {
	ID             int             `gorm:"primary_key" json:"id"`
	UserId         int             `gorm:"index;not null" json:"user_id" binding:"required"`
	UserName       string          `gorm:"size:100" json:"user_name"`
	AllocationDate time.Time       `gorm:"not null" json:"allocation_date" binding:"required"`
	ProductId      int             `gorm:"index;not null" json:"product_id" binding:"required"`
	ProductName    string          `gorm:"size:100" json:"product_name"`
	Quantity       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDriverAllocation struct {
	UserId         int             `json:"user_id" binding:"required"`
	AllocationDate time.Time       `json:"allocation_date" binding:"required"`
	ProductId      int             `json:"product_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Notes          string          `json:"notes"`
}

func CreateDriverAllocation(ctx context.Context, input *NewDriverAllocation) (*DriverAllocation, error) {

	db := config.GetDB()

	user, err := GetUser(ctx, input.UserId)
	if err != nil {
		return nil, utils.BadRequest("driver not found")
	}
	product, err := GetProduct(ctx, input.ProductId)
	if err != nil {
		return nil, utils.BadRequest("product not found")
	}
	if !input.Quantity.IsPositive() {
		return nil, utils.BadRequest("quantity must be positive")
	}

	allocation := DriverAllocation{
		UserId:         input.UserId,
		UserName:       user.Name,
		AllocationDate: input.AllocationDate,
		ProductId:      input.ProductId,
		ProductName:    product.Name,
		Quantity:       input.Quantity,
		Notes:          input.Notes,
	}

	if err := db.WithContext(ctx).Create(&allocation).Error; err != nil {
		return nil, err
	}
	return &allocation, nil
}

func GetDriverAllocation(ctx context.Context, id int) (*DriverAllocation, error) {
	return utils.FetchSingleModel[DriverAllocation](ctx, id)
}

func ListDriverAllocations(ctx context.Context, userId int) ([]*DriverAllocation, error) {

	db := config.GetDB()
	q := db.WithContext(ctx).Order("allocation_date DESC, id DESC")
	if userId > 0 {
		q = q.Where("user_id = ?", userId)
	}

	var results []*DriverAllocation
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateDriverAllocation(ctx context.Context, id int, input *NewDriverAllocation) (*DriverAllocation, error) {

	db := config.GetDB()

	allocation, err := utils.FetchSingleModel[DriverAllocation](ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := GetUser(ctx, input.UserId)
	if err != nil {
		return nil, utils.BadRequest("driver not found")
	}
	product, err := GetProduct(ctx, input.ProductId)
	if err != nil {
		return nil, utils.BadRequest("product not found")
	}
	if !input.Quantity.IsPositive() {
		return nil, utils.BadRequest("quantity must be positive")
	}

	allocation.UserId = input.UserId
	allocation.UserName = user.Name
	allocation.AllocationDate = input.AllocationDate
	allocation.ProductId = input.ProductId
	allocation.ProductName = product.Name
	allocation.Quantity = input.Quantity
	allocation.Notes = input.Notes

	if err := db.WithContext(ctx).Save(allocation).Error; err != nil {
		return nil, err
	}
	return allocation, nil
}

func DeleteDriverAllocation(ctx context.Context, id int) (*DriverAllocation, error) {

	db := config.GetDB()

	allocation, err := utils.FetchSingleModel[DriverAllocation](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Delete(allocation).Error; err != nil {
		return nil, err
	}
	return allocation, nil
}
