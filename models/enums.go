package models

import "bitbucket.org/mmdatafocus/depot_backend/utils"

type UserRole string

const (
	UserRoleAdmin   UserRole = "Admin"
	UserRoleManager UserRole = "Manager"
	UserRoleDriver  UserRole = "Driver"
	UserRoleStaff   UserRole = "Staff"
)

func ParseUserRole(s string) (UserRole, error) {
	switch s {
	case "Admin":
		return UserRoleAdmin, nil
	case "Manager":
		return UserRoleManager, nil
	case "Driver":
		return UserRoleDriver, nil
	case "Staff":
		return UserRoleStaff, nil
	default:
		return "", utils.BadRequest("invalid user role")
	}
}

// CanManageCollections gates the collections worklist + recognition.
func (r UserRole) CanManageCollections() bool {
	return r == UserRoleAdmin || r == UserRoleManager
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "Pending":
		return OrderStatusPending, nil
	case "Delivered":
		return OrderStatusDelivered, nil
	case "Cancelled":
		return OrderStatusCancelled, nil
	default:
		return "", utils.BadRequest("invalid order status")
	}
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodCredit PaymentMethod = "Credit"
	PaymentMethodCheque PaymentMethod = "Cheque"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "Cash":
		return PaymentMethodCash, nil
	case "Credit":
		return PaymentMethodCredit, nil
	case "Cheque":
		return PaymentMethodCheque, nil
	default:
		return "", utils.BadRequest("invalid payment method")
	}
}

type CollectionType string

const (
	CollectionTypeCredit CollectionType = "credit"
	CollectionTypeCheque CollectionType = "cheque"
)

func ParseCollectionType(s string) (CollectionType, error) {
	switch s {
	case "credit":
		return CollectionTypeCredit, nil
	case "cheque":
		return CollectionTypeCheque, nil
	default:
		return "", utils.BadRequest("invalid collection type")
	}
}

type CollectionStatus string

const (
	CollectionStatusPending  CollectionStatus = "pending"
	CollectionStatusComplete CollectionStatus = "complete"
)

func ParseCollectionStatus(s string) (CollectionStatus, error) {
	switch s {
	case "pending":
		return CollectionStatusPending, nil
	case "complete":
		return CollectionStatusComplete, nil
	default:
		return "", utils.BadRequest("invalid collection status")
	}
}
