package inventoryrepo

import (
	"context"
	"errors"
	"time"

	"dinner/internal/core/domain/model/inventory"
	"dinner/internal/core/domain/model/kernel"
	"dinner/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB, tracker aggregateTracker) *GormStockRepository {
	return &GormStockRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stock row and writes the store-assigned identifier back
// into the aggregate.
func (r *GormStockRepository) Add(ctx context.Context, stock *inventory.ItemStock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	dto := stockFromDomain(stock)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := stock.SetID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(stock.ID(), stock)
	return nil
}

// Update saves an existing stock row to the database.
func (r *GormStockRepository) Update(ctx context.Context, stock *inventory.ItemStock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	dto := stockFromDomain(stock)
	result := r.db.WithContext(ctx).
		Model(&ItemStockDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item stock", dto.ID)
	}

	r.tracker.TrackAggregate(stock.ID(), stock)
	return nil
}

// GetByMenuItem retrieves the stock row for an item.
func (r *GormStockRepository) GetByMenuItem(ctx context.Context, menuItemID int64) (*inventory.ItemStock, error) {
	var dto ItemStockDTO
	if err := r.db.WithContext(ctx).First(&dto, "menu_item_id = ?", menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item stock", menuItemID)
		}
		return nil, err
	}

	return stockToDomain(dto)
}

// GetAll retrieves every stock row.
func (r *GormStockRepository) GetAll(ctx context.Context) ([]*inventory.ItemStock, error) {
	var dtos []ItemStockDTO
	if err := r.db.WithContext(ctx).Order("menu_item_id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	stocks := make([]*inventory.ItemStock, 0, len(dtos))
	for _, dto := range dtos {
		stock, err := stockToDomain(dto)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}

	return stocks, nil
}

// GormReservationRepository implements ReservationRepository using GORM.
type GormReservationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormReservationRepository creates a new GORM reservation repository.
func NewGormReservationRepository(db *gorm.DB, tracker aggregateTracker) *GormReservationRepository {
	return &GormReservationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new reservation and writes the store-assigned identifier back
// into the entity.
func (r *GormReservationRepository) Add(ctx context.Context, reservation *inventory.Reservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}

	dto := reservationFromDomain(reservation)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := reservation.SetID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(reservation.ID(), reservation)
	return nil
}

// Update saves an existing reservation to the database.
func (r *GormReservationRepository) Update(ctx context.Context, reservation *inventory.Reservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}

	dto := reservationFromDomain(reservation)
	result := r.db.WithContext(ctx).
		Model(&ReservationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("reservation", dto.ID)
	}

	r.tracker.TrackAggregate(reservation.ID(), reservation)
	return nil
}

// GetByOrder retrieves all reservations held by an order.
func (r *GormReservationRepository) GetByOrder(ctx context.Context, orderID int64) ([]*inventory.Reservation, error) {
	var dtos []ReservationDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetUnconsumedByOrder retrieves the order's reservations the kitchen has
// not used yet.
func (r *GormReservationRepository) GetUnconsumedByOrder(ctx context.Context, orderID int64) ([]*inventory.Reservation, error) {
	var dtos []ReservationDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND consumed = ?", orderID, false).
		Order("id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// SumActiveQuantityInWindow sums the unconsumed, unexpired quantity held for
// an item inside the window.
func (r *GormReservationRepository) SumActiveQuantityInWindow(
	ctx context.Context,
	menuItemID int64,
	window kernel.Window,
	now time.Time,
) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&ReservationDTO{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("menu_item_id = ? AND consumed = ?", menuItemID, false).
		Where("window_start >= ? AND window_start <= ?", window.Start(), window.End()).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// DeleteByOrder removes an order's reservations, releasing its holds.
func (r *GormReservationRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&ReservationDTO{}).Error
}

// DeleteExpired removes unconsumed reservations past their expiry.
func (r *GormReservationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("consumed = ? AND expires_at IS NOT NULL AND expires_at <= ?", false, now).
		Delete(&ReservationDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// DeletePastWindows removes reservations whose window ended before now.
func (r *GormReservationRepository) DeletePastWindows(ctx context.Context, now time.Time) (int64, error) {
	window, err := kernel.NewWindowForTime(now)
	if err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Where("window_start < ?", window.Start()).
		Delete(&ReservationDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// SumTodayDemandByItem sums reserved quantity per item for the given window.
// Consumed reservations count too, the nightly restock sizes purchases on
// the full demand of the day.
func (r *GormReservationRepository) SumTodayDemandByItem(
	ctx context.Context,
	window kernel.Window,
) (map[int64]int, error) {
	rows, err := r.db.WithContext(ctx).
		Model(&ReservationDTO{}).
		Select("menu_item_id, SUM(quantity)").
		Where("window_start >= ? AND window_start <= ?", window.Start(), window.End()).
		Group("menu_item_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	demand := make(map[int64]int)
	for rows.Next() {
		var menuItemID int64
		var quantity int
		if err = rows.Scan(&menuItemID, &quantity); err != nil {
			return nil, err
		}
		demand[menuItemID] = quantity
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return demand, nil
}

func toDomainSlice(dtos []ReservationDTO) ([]*inventory.Reservation, error) {
	reservations := make([]*inventory.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		reservation, err := reservationToDomain(dto)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}
