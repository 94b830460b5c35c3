package changereqrepo

import (
	"context"
	"errors"

	"dinner/internal/core/domain/model/changereq"
	"dinner/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// GormChangeRequestRepository implements ChangeRequestRepository using GORM.
type GormChangeRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormChangeRequestRepository creates a new GORM change request repository.
func NewGormChangeRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormChangeRequestRepository {
	return &GormChangeRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// activeStatuses returns the string forms of the statuses that keep a
// request open.
func activeStatuses() []string {
	statuses := changereq.ActiveStatuses()
	raw := make([]string, 0, len(statuses))
	for _, status := range statuses {
		raw = append(raw, status.String())
	}
	return raw
}

// Add saves a new change request with its item lines and writes the
// store-assigned identifier back into the aggregate.
func (r *GormChangeRequestRepository) Add(ctx context.Context, request *changereq.ChangeRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(request)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := request.SetID(dto.ID); err != nil {
		return err
	}

	if err := r.writeItems(ctx, dto.ID, items); err != nil {
		return err
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Update saves an existing change request, replacing its item lines.
func (r *GormChangeRequestRepository) Update(ctx context.Context, request *changereq.ChangeRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(request)
	result := r.db.WithContext(ctx).
		Model(&ChangeRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("change request", dto.ID)
	}

	err := r.db.WithContext(ctx).
		Where("change_request_id = ?", dto.ID).
		Delete(&ChangeRequestItemDTO{}).Error
	if err != nil {
		return err
	}

	if err = r.writeItems(ctx, dto.ID, items); err != nil {
		return err
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Get retrieves a change request by ID.
func (r *GormChangeRequestRepository) Get(ctx context.Context, id int64) (*changereq.ChangeRequest, error) {
	var dto ChangeRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("change request", id)
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetActiveByOrder retrieves the order's active request, if any.
func (r *GormChangeRequestRepository) GetActiveByOrder(ctx context.Context, orderID int64) (*changereq.ChangeRequest, error) {
	var dto ChangeRequestDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID, activeStatuses()).
		Order("id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("change request for order", orderID)
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetAllByUser retrieves a customer's change requests, newest first.
func (r *GormChangeRequestRepository) GetAllByUser(ctx context.Context, userID int64) ([]*changereq.ChangeRequest, error) {
	var dtos []ChangeRequestDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.loadSlice(ctx, dtos)
}

// GetAllByStatus retrieves all requests in the given status.
func (r *GormChangeRequestRepository) GetAllByStatus(ctx context.Context, status changereq.Status) ([]*changereq.ChangeRequest, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []ChangeRequestDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("created_at DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.loadSlice(ctx, dtos)
}

func (r *GormChangeRequestRepository) writeItems(ctx context.Context, requestID int64, items []ChangeRequestItemDTO) error {
	if len(items) == 0 {
		return nil
	}

	for i := range items {
		items[i].ID = 0
		items[i].ChangeRequestID = requestID
	}

	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *GormChangeRequestRepository) load(ctx context.Context, dto ChangeRequestDTO) (*changereq.ChangeRequest, error) {
	var items []ChangeRequestItemDTO
	err := r.db.WithContext(ctx).
		Where("change_request_id = ?", dto.ID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, items)
}

func (r *GormChangeRequestRepository) loadSlice(ctx context.Context, dtos []ChangeRequestDTO) ([]*changereq.ChangeRequest, error) {
	requests := make([]*changereq.ChangeRequest, 0, len(dtos))
	for _, dto := range dtos {
		request, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}
