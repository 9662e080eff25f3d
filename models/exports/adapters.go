package exports

import (
	"strings"

	"bitbucket.org/mmdatafocus/depot_backend/models"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
)

// Adapters flatten domain entity lists into fixed-label rows for the
// exporter. Column labels and order are fixed per entity; absent optionals
// default to "" or zero.

const (
	OrdersSheetName            = "Orders"
	ProductsSheetName          = "Products"
	CustomersSheetName         = "Customers"
	SuppliersSheetName         = "Suppliers"
	DriverAllocationsSheetName = "Driver Allocations"
	DriverSalesSheetName       = "Driver Sales"
	UsersSheetName             = "Users"

	OrdersFilePrefix            = "orders"
	ProductsFilePrefix          = "products"
	CustomersFilePrefix         = "customers"
	SuppliersFilePrefix         = "suppliers"
	DriverAllocationsFilePrefix = "driver_allocations"
	DriverSalesFilePrefix       = "driver_sales"
	UsersFilePrefix             = "users"
)

func OrderRows(orders []*models.Order) []Row {
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		items := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, item.Name+" x "+item.Qty.String())
		}
		rows = append(rows, Row{
			{Label: "Order No", Value: o.OrderNumber},
			{Label: "Date", Value: o.OrderDate},
			{Label: "Customer", Value: o.CustomerName},
			{Label: "Items", Value: strings.Join(items, "; ")},
			{Label: "Total", Value: o.Total},
			{Label: "Status", Value: string(o.CurrentStatus)},
			{Label: "Payment", Value: string(o.PaymentMethod)},
			{Label: "Credit Balance", Value: o.CreditBalance},
			{Label: "Cheque Balance", Value: o.ChequeBalance},
			{Label: "Notes", Value: o.Notes},
		})
	}
	return rows
}

func ProductRows(products []*models.Product) []Row {
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, Row{
			{Label: "Name", Value: p.Name},
			{Label: "SKU", Value: p.Sku},
			{Label: "Unit", Value: p.Unit},
			{Label: "Unit Price", Value: p.UnitPrice},
			{Label: "Stock Qty", Value: p.StockQty},
			{Label: "Active", Value: utils.DereferencePtr(p.IsActive, true)},
		})
	}
	return rows
}

func CustomerRows(customers []*models.Customer) []Row {
	rows := make([]Row, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, Row{
			{Label: "Name", Value: c.Name},
			{Label: "Email", Value: c.Email},
			{Label: "Phone", Value: c.Phone},
			{Label: "Address", Value: c.Address},
			{Label: "Outstanding Balance", Value: c.OutstandingBalance},
			{Label: "Notes", Value: c.Notes},
			{Label: "Active", Value: utils.DereferencePtr(c.IsActive, true)},
		})
	}
	return rows
}

func SupplierRows(suppliers []*models.Supplier) []Row {
	rows := make([]Row, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, Row{
			{Label: "Name", Value: s.Name},
			{Label: "Contact", Value: s.ContactName},
			{Label: "Email", Value: s.Email},
			{Label: "Phone", Value: s.Phone},
			{Label: "Address", Value: s.Address},
			{Label: "Notes", Value: s.Notes},
			{Label: "Active", Value: utils.DereferencePtr(s.IsActive, true)},
		})
	}
	return rows
}

func DriverAllocationRows(allocations []*models.DriverAllocation) []Row {
	rows := make([]Row, 0, len(allocations))
	for _, a := range allocations {
		rows = append(rows, Row{
			{Label: "Date", Value: a.AllocationDate},
			{Label: "Driver", Value: a.UserName},
			{Label: "Product", Value: a.ProductName},
			{Label: "Quantity", Value: a.Quantity},
			{Label: "Notes", Value: a.Notes},
		})
	}
	return rows
}

func DriverSaleRows(sales []*models.DriverSale) []Row {
	rows := make([]Row, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, Row{
			{Label: "Date", Value: s.SaleDate},
			{Label: "Driver", Value: s.UserName},
			{Label: "Customer", Value: s.CustomerName},
			{Label: "Amount", Value: s.Amount},
			{Label: "Payment", Value: string(s.PaymentMethod)},
			{Label: "Notes", Value: s.Notes},
		})
	}
	return rows
}

func UserRows(users []*models.User) []Row {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, Row{
			{Label: "Username", Value: u.Username},
			{Label: "Name", Value: u.Name},
			{Label: "Email", Value: utils.DereferencePtr(u.Email, "")},
			{Label: "Phone", Value: u.Phone},
			{Label: "Role", Value: string(u.Role)},
			{Label: "Active", Value: utils.DereferencePtr(u.IsActive, true)},
		})
	}
	return rows
}
