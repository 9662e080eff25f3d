package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/depot_backend/config"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID             int             `gorm:"primary_key" json:"id"`
	OrderNumber    string          `gorm:"size:255;not null;unique" json:"order_number"`
	CustomerId     int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	CustomerName   string          `gorm:"size:100" json:"customer_name"`
	OrderDate      time.Time       `gorm:"not null" json:"order_date" binding:"required"`
	Total          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	CurrentStatus  OrderStatus     `gorm:"type:enum('Pending','Delivered','Cancelled');not null;default:'Pending'" json:"current_status"`
	PaymentMethod  PaymentMethod   `gorm:"type:enum('Cash','Credit','Cheque');not null;default:'Cash'" json:"payment_method"`
	AssignedUserId *int            `gorm:"index" json:"assigned_user_id"`
	CreditBalance  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"credit_balance"`
	ChequeBalance  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cheque_balance"`
	Notes          string          `gorm:"type:text" json:"notes"`
	Items          []OrderItem     `gorm:"foreignKey:OrderId" json:"items"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type OrderItem struct {
	ID        int             `gorm:"primary_key" json:"id"`
	OrderId   int             `gorm:"index;not null" json:"order_id"`
	ProductId int             `json:"product_id"`
	Name      string          `gorm:"size:100" json:"name" binding:"required"`
	Qty       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"qty" binding:"required"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
}

type NewOrder struct {
	CustomerId     int             `json:"customer_id" binding:"required"`
	OrderDate      time.Time       `json:"order_date" binding:"required"`
	Total          decimal.Decimal `json:"total"`
	CurrentStatus  OrderStatus     `json:"current_status"`
	PaymentMethod  PaymentMethod   `json:"payment_method" binding:"required"`
	AssignedUserId *int            `json:"assigned_user_id"`
	CreditBalance  decimal.Decimal `json:"credit_balance"`
	ChequeBalance  decimal.Decimal `json:"cheque_balance"`
	Notes          string          `json:"notes"`
	Items          []NewOrderItem  `json:"items"`
}

type NewOrderItem struct {
	ProductId int             `json:"product_id"`
	Name      string          `json:"name" binding:"required"`
	Qty       decimal.Decimal `json:"qty" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderListFilter narrows ListOrders; zero values mean "all".
type OrderListFilter struct {
	Status        OrderStatus
	PaymentMethod PaymentMethod
	CustomerId    int
}

func (input *NewOrder) validate(ctx context.Context) error {
	if err := utils.ValidateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return utils.BadRequest("customer not found")
	}
	if input.AssignedUserId != nil {
		if err := utils.ValidateResourceId[User](ctx, *input.AssignedUserId); err != nil {
			return utils.BadRequest("assigned user not found")
		}
	}
	if input.CurrentStatus != "" {
		if _, err := ParseOrderStatus(string(input.CurrentStatus)); err != nil {
			return err
		}
	}
	if _, err := ParsePaymentMethod(string(input.PaymentMethod)); err != nil {
		return err
	}
	if input.Total.IsNegative() || input.CreditBalance.IsNegative() || input.ChequeBalance.IsNegative() {
		return utils.BadRequest("amounts cannot be negative")
	}
	for _, item := range input.Items {
		if item.ProductId > 0 {
			if err := utils.ValidateResourceId[Product](ctx, item.ProductId); err != nil {
				return utils.BadRequest("product not found: " + item.Name)
			}
		}
	}
	return nil
}

// next order number, e.g. ORD-000124
func nextOrderNumber(ctx context.Context) (string, error) {
	db := config.GetDB()
	var maxId int
	if err := db.WithContext(ctx).Model(&Order{}).Select("COALESCE(MAX(id), 0)").Scan(&maxId).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%06d", maxId+1), nil
}

func CreateOrder(ctx context.Context, input *NewOrder) (*Order, error) {

	db := config.GetDB()

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	customer, err := GetCustomer(ctx, input.CustomerId)
	if err != nil {
		return nil, utils.BadRequest("customer not found")
	}

	items := make([]OrderItem, 0, len(input.Items))
	itemTotal := decimal.Zero
	for _, it := range input.Items {
		amount := it.Qty.Mul(it.UnitPrice)
		items = append(items, OrderItem{
			ProductId: it.ProductId,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Amount:    amount,
		})
		itemTotal = itemTotal.Add(amount)
	}

	total := input.Total
	if total.IsZero() {
		total = itemTotal
	}

	// unsettled credit/cheque orders open a balance of the full total
	// unless the caller supplies a partial one
	creditBalance := input.CreditBalance
	chequeBalance := input.ChequeBalance
	if input.PaymentMethod == PaymentMethodCredit && creditBalance.IsZero() {
		creditBalance = total
	}
	if input.PaymentMethod == PaymentMethodCheque && chequeBalance.IsZero() {
		chequeBalance = total
	}

	status := input.CurrentStatus
	if status == "" {
		status = OrderStatusPending
	}

	orderNumber, err := nextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := Order{
		OrderNumber:    orderNumber,
		CustomerId:     input.CustomerId,
		CustomerName:   customer.Name,
		OrderDate:      input.OrderDate,
		Total:          total,
		CurrentStatus:  status,
		PaymentMethod:  input.PaymentMethod,
		AssignedUserId: input.AssignedUserId,
		CreditBalance:  creditBalance,
		ChequeBalance:  chequeBalance,
		Notes:          input.Notes,
		Items:          items,
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	// opening a credit balance raises the customer's outstanding balance
	if creditBalance.IsPositive() {
		newBalance := customer.OutstandingBalance.Add(creditBalance)
		if err := tx.WithContext(ctx).Model(&Customer{}).Where("id = ?", customer.ID).
			Update("outstanding_balance", newBalance).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	return &order, tx.Commit().Error
}

func GetOrder(ctx context.Context, id int) (*Order, error) {
	return utils.FetchSingleModel[Order](ctx, id, "Items")
}

func GetAllOrders(ctx context.Context) ([]*Order, error) {
	return utils.FetchAllModels[Order](ctx, "Items")
}

func ListOrders(ctx context.Context, filter OrderListFilter) ([]*Order, error) {

	db := config.GetDB()
	q := db.WithContext(ctx).Preload("Items").Order("order_date DESC, id DESC")

	if filter.Status != "" {
		q = q.Where("current_status = ?", filter.Status)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.CustomerId > 0 {
		q = q.Where("customer_id = ?", filter.CustomerId)
	}

	var results []*Order
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateOrder(ctx context.Context, id int, input *NewOrder) (*Order, error) {

	db := config.GetDB()

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	order, err := utils.FetchSingleModel[Order](ctx, id, "Items")
	if err != nil {
		return nil, err
	}

	customer, err := GetCustomer(ctx, input.CustomerId)
	if err != nil {
		return nil, utils.BadRequest("customer not found")
	}

	order.CustomerId = input.CustomerId
	order.CustomerName = customer.Name
	order.OrderDate = input.OrderDate
	order.Total = input.Total
	if input.CurrentStatus != "" {
		order.CurrentStatus = input.CurrentStatus
	}
	order.PaymentMethod = input.PaymentMethod
	order.AssignedUserId = input.AssignedUserId
	order.CreditBalance = input.CreditBalance
	order.ChequeBalance = input.ChequeBalance
	order.Notes = input.Notes

	tx := db.Begin()
	if len(input.Items) > 0 {
		if err := tx.WithContext(ctx).Where("order_id = ?", order.ID).Delete(&OrderItem{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		items := make([]OrderItem, 0, len(input.Items))
		for _, it := range input.Items {
			items = append(items, OrderItem{
				OrderId:   order.ID,
				ProductId: it.ProductId,
				Name:      it.Name,
				Qty:       it.Qty,
				UnitPrice: it.UnitPrice,
				Amount:    it.Qty.Mul(it.UnitPrice),
			})
		}
		order.Items = items
	}
	if err := tx.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return order, tx.Commit().Error
}

func DeleteOrder(ctx context.Context, id int) (*Order, error) {

	db := config.GetDB()

	order, err := utils.FetchSingleModel[Order](ctx, id, "Items")
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("order_id = ?", order.ID).Delete(&OrderItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return order, tx.Commit().Error
}
