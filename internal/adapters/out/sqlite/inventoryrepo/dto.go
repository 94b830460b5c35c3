// Package inventoryrepo provides data transfer objects and mapping functions
// for inventory persistence: per-item stock rows and the capacity
// reservations that orders hold against them.
package inventoryrepo

import (
	"time"

	"dinner/internal/core/domain/model/inventory"
)

// ItemStockDTO represents the database row for an item's stock tracking.
type ItemStockDTO struct {
	ID                int64 `gorm:"primaryKey;autoIncrement"`
	MenuItemID        int64 `gorm:"uniqueIndex"`
	CapacityPerWindow int
	OrderedQuantity   int
	SafetyStock       int
	Notes             string
	LastRestockedAt   *time.Time
}

// TableName overrides GORM's default naming convention.
func (ItemStockDTO) TableName() string {
	return "item_stocks"
}

// ReservationDTO represents the database row for one capacity reservation.
// WindowStart is denormalized from the delivery time so window sums stay a
// single indexed range scan.
type ReservationDTO struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	OrderID      int64 `gorm:"index"`
	MenuItemID   int64 `gorm:"index"`
	Quantity     int
	WindowStart  time.Time `gorm:"index"`
	DeliveryTime time.Time
	Consumed     bool
	ExpiresAt    *time.Time
}

// TableName overrides GORM's default naming convention.
func (ReservationDTO) TableName() string {
	return "reservations"
}

// stockFromDomain converts a stock aggregate to its database row.
func stockFromDomain(stock *inventory.ItemStock) ItemStockDTO {
	return ItemStockDTO{
		ID:                stock.ID(),
		MenuItemID:        stock.MenuItemID(),
		CapacityPerWindow: stock.CapacityPerWindow(),
		OrderedQuantity:   stock.OrderedQuantity(),
		SafetyStock:       stock.SafetyStock(),
		Notes:             stock.Notes(),
		LastRestockedAt:   stock.LastRestockedAt(),
	}
}

// stockToDomain reconstructs a stock aggregate from its database row.
func stockToDomain(dto ItemStockDTO) (*inventory.ItemStock, error) {
	return inventory.RestoreItemStock(
		dto.ID,
		dto.MenuItemID,
		dto.CapacityPerWindow,
		dto.OrderedQuantity,
		dto.SafetyStock,
		dto.Notes,
		dto.LastRestockedAt,
	)
}

// reservationFromDomain converts a reservation to its database row.
func reservationFromDomain(reservation *inventory.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:           reservation.ID(),
		OrderID:      reservation.OrderID(),
		MenuItemID:   reservation.MenuItemID(),
		Quantity:     reservation.Quantity(),
		WindowStart:  reservation.Window().Start(),
		DeliveryTime: reservation.DeliveryTime(),
		Consumed:     reservation.IsConsumed(),
		ExpiresAt:    reservation.ExpiresAt(),
	}
}

// reservationToDomain reconstructs a reservation from its database row. The
// window is rebuilt from the delivery time.
func reservationToDomain(dto ReservationDTO) (*inventory.Reservation, error) {
	return inventory.RestoreReservation(
		dto.ID,
		dto.OrderID,
		dto.MenuItemID,
		dto.Quantity,
		dto.DeliveryTime,
		dto.Consumed,
		dto.ExpiresAt,
	)
}
