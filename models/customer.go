package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/depot_backend/config"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	Name               string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Email              string          `gorm:"size:100" json:"email"`
	Phone              string          `gorm:"size:20" json:"phone"`
	Address            string          `gorm:"size:255" json:"address"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"outstanding_balance"`
	Notes              string          `gorm:"type:text" json:"notes"`
	IsActive           *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name               string          `json:"name" binding:"required"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	Notes              string          `json:"notes"`
	IsActive           *bool           `json:"is_active"`
}

func (input *NewCustomer) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Customer](ctx, id); err != nil {
			return err
		}
	}
	// validate unique name
	if err := utils.ValidateUnique[Customer](ctx, "name", input.Name, id); err != nil {
		return err
	}
	// validate email
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return utils.BadRequest("invalid email address")
	}
	// validate phone
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return utils.BadRequest("invalid phone number")
		}
	}
	if input.OutstandingBalance.IsNegative() {
		return utils.BadRequest("outstanding balance cannot be negative")
	}
	return nil
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {

	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	isActive := input.IsActive
	if isActive == nil {
		isActive = utils.NewTrue()
	}

	customer := Customer{
		Name:               input.Name,
		Email:              input.Email,
		Phone:              input.Phone,
		Address:            input.Address,
		OutstandingBalance: input.OutstandingBalance,
		Notes:              input.Notes,
		IsActive:           isActive,
	}

	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return utils.FetchSingleModel[Customer](ctx, id)
}

func GetAllCustomers(ctx context.Context) ([]*Customer, error) {
	return utils.FetchAllModels[Customer](ctx)
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {

	db := config.GetDB()

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	customer, err := utils.FetchSingleModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.OutstandingBalance = input.OutstandingBalance
	customer.Notes = input.Notes
	if input.IsActive != nil {
		customer.IsActive = input.IsActive
	}

	if err := db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {

	db := config.GetDB()

	customer, err := utils.FetchSingleModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	// don't delete customers that still have orders
	var count int64
	if err := db.WithContext(ctx).Model(&Order{}).Where("customer_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.BadRequest("customer is used in orders")
	}

	if err := db.WithContext(ctx).Delete(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}
