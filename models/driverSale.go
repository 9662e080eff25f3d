package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/depot_backend/config"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/shopspring/decimal"
)

// DriverSale records a cash/credit/cheque sale a driver made on route,
// outside the regular order flow.
type DriverSale struct {
	ID            int             `gorm:"primary_key" json:"id"`
	UserId        int             `gorm:"index;not null" json:"user_id" binding:"required"`
	UserName      string          `gorm:"size:100" json:"user_name"`
	SaleDate      time.Time       `gorm:"not null" json:"sale_date" binding:"required"`
	CustomerName  string          `gorm:"size:100" json:"customer_name"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"type:enum('Cash','Credit','Cheque');not null;default:'Cash'" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDriverSale struct {
	UserId        int             `json:"user_id" binding:"required"`
	SaleDate      time.Time       `json:"sale_date" binding:"required"`
	CustomerName  string          `json:"customer_name"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod PaymentMethod   `json:"payment_method" binding:"required"`
	Notes         string          `json:"notes"`
}

func CreateDriverSale(ctx context.Context, input *NewDriverSale) (*DriverSale, error) {

	db := config.GetDB()

	user, err := GetUser(ctx, input.UserId)
	if err != nil {
		return nil, utils.BadRequest("driver not found")
	}
	if !input.Amount.IsPositive() {
		return nil, utils.BadRequest("amount must be positive")
	}
	if _, err := ParsePaymentMethod(string(input.PaymentMethod)); err != nil {
		return nil, err
	}

	sale := DriverSale{
		UserId:        input.UserId,
		UserName:      user.Name,
		SaleDate:      input.SaleDate,
		CustomerName:  input.CustomerName,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	if err := db.WithContext(ctx).Create(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func GetDriverSale(ctx context.Context, id int) (*DriverSale, error) {
	return utils.FetchSingleModel[DriverSale](ctx, id)
}

func ListDriverSales(ctx context.Context, userId int) ([]*DriverSale, error) {

	db := config.GetDB()
	q := db.WithContext(ctx).Order("sale_date DESC, id DESC")
	if userId > 0 {
		q = q.Where("user_id = ?", userId)
	}

	var results []*DriverSale
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateDriverSale(ctx context.Context, id int, input *NewDriverSale) (*DriverSale, error) {

	db := config.GetDB()

	sale, err := utils.FetchSingleModel[DriverSale](ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := GetUser(ctx, input.UserId)
	if err != nil {
		return nil, utils.BadRequest("driver not found")
	}
	if !input.Amount.IsPositive() {
		return nil, utils.BadRequest("amount must be positive")
	}
	if _, err := ParsePaymentMethod(string(input.PaymentMethod)); err != nil {
		return nil, err
	}

	sale.UserId = input.UserId
	sale.UserName = user.Name
	sale.SaleDate = input.SaleDate
	sale.CustomerName = input.CustomerName
	sale.Amount = input.Amount
	sale.PaymentMethod = input.PaymentMethod
	sale.Notes = input.Notes

	if err := db.WithContext(ctx).Save(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func DeleteDriverSale(ctx context.Context, id int) (*DriverSale, error) {

	db := config.GetDB()

	sale, err := utils.FetchSingleModel[DriverSale](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Delete(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}
