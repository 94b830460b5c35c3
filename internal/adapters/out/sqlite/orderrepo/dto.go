// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and its lines, handling the conversion between domain entities
// and database rows.
package orderrepo

import (
	"time"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
)

// OrderDTO represents the database row for an order aggregate. Statuses are
// stored as their string form so rows stay readable in the admin console.
type OrderDTO struct {
	ID                 int64 `gorm:"primaryKey;autoIncrement"`
	UserID             int64 `gorm:"index"`
	DinnerTypeID       int64
	ServingStyle       string
	DeliveryTime       time.Time `gorm:"index"`
	DeliveryAddress    string
	TotalPrice         int
	PaymentMethod      string
	Status             string `gorm:"index"`
	ApprovalStatus     string
	CookingEmployeeID  *int64
	DeliveryEmployeeID *int64
	CreatedAt          time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line of an order.
type OrderItemDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	OrderID    int64 `gorm:"index"`
	MenuItemID int64
	Quantity   int
}

// TableName overrides GORM's default naming convention.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database row.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:                 aggregate.ID(),
		UserID:             aggregate.UserID(),
		DinnerTypeID:       aggregate.DinnerTypeID(),
		ServingStyle:       aggregate.ServingStyle().String(),
		DeliveryTime:       aggregate.DeliveryTime(),
		DeliveryAddress:    aggregate.DeliveryAddress(),
		TotalPrice:         aggregate.TotalPrice(),
		PaymentMethod:      aggregate.PaymentMethod(),
		Status:             aggregate.Status().String(),
		ApprovalStatus:     aggregate.ApprovalStatus().String(),
		CookingEmployeeID:  aggregate.CookingEmployeeID(),
		DeliveryEmployeeID: aggregate.DeliveryEmployeeID(),
		CreatedAt:          aggregate.CreatedAt(),
	}
}

// toDomain reconstructs an order aggregate from its database row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	style, err := menu.ParseServingStyle(dto.ServingStyle)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	approval, err := order.ParseApprovalStatus(dto.ApprovalStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		dto.UserID,
		dto.DinnerTypeID,
		style,
		dto.DeliveryTime,
		dto.DeliveryAddress,
		dto.TotalPrice,
		dto.PaymentMethod,
		status,
		approval,
		dto.CookingEmployeeID,
		dto.DeliveryEmployeeID,
		dto.CreatedAt,
	)
}

// itemFromDomain converts an order line to its database row.
func itemFromDomain(orderID int64, item order.Item) OrderItemDTO {
	return OrderItemDTO{
		ID:         item.ID,
		OrderID:    orderID,
		MenuItemID: item.MenuItemID,
		Quantity:   item.Quantity,
	}
}

// itemToDomain converts a database row to an order line.
func itemToDomain(dto OrderItemDTO) order.Item {
	return order.Item{
		ID:         dto.ID,
		OrderID:    dto.OrderID,
		MenuItemID: dto.MenuItemID,
		Quantity:   dto.Quantity,
	}
}
