// Package changereqrepo provides data transfer objects and mapping functions
// for change request persistence. A request spans two tables: the request
// row with its quoted amounts, and one row per requested item line.
package changereqrepo

import (
	"time"

	"dinner/internal/core/domain/model/changereq"
	"dinner/internal/core/domain/model/menu"
)

// ChangeRequestDTO represents the database row for a change request. The
// quote is stored as its three source amounts; derived figures are
// recomputed on read.
type ChangeRequestDTO struct {
	ID                 int64 `gorm:"primaryKey;autoIncrement"`
	OrderID            int64 `gorm:"index"`
	UserID             int64 `gorm:"index"`
	NewDinnerTypeID    int64
	NewServingStyle    string
	NewDeliveryTime    time.Time
	NewDeliveryAddress string
	AlreadyPaid        int
	RecalculatedTotal  int
	ChangeFee          int
	Status             string `gorm:"index"`
	AdminComment       string
	CreatedAt          time.Time
}

// TableName overrides GORM's default naming convention.
func (ChangeRequestDTO) TableName() string {
	return "change_requests"
}

// ChangeRequestItemDTO represents one requested item line.
type ChangeRequestItemDTO struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	ChangeRequestID int64 `gorm:"index"`
	MenuItemID      int64
	Quantity        int
}

// TableName overrides GORM's default naming convention.
func (ChangeRequestItemDTO) TableName() string {
	return "change_request_items"
}

// fromDomain converts a change request to its database rows.
func fromDomain(request *changereq.ChangeRequest) (ChangeRequestDTO, []ChangeRequestItemDTO) {
	quote := request.Quote()
	dto := ChangeRequestDTO{
		ID:                 request.ID(),
		OrderID:            request.OrderID(),
		UserID:             request.UserID(),
		NewDinnerTypeID:    request.NewDinnerTypeID(),
		NewServingStyle:    request.NewServingStyle().String(),
		NewDeliveryTime:    request.NewDeliveryTime(),
		NewDeliveryAddress: request.NewDeliveryAddress(),
		AlreadyPaid:        quote.AlreadyPaid(),
		RecalculatedTotal:  quote.NewTotal() - quote.ChangeFee(),
		ChangeFee:          quote.ChangeFee(),
		Status:             request.Status().String(),
		AdminComment:       request.AdminComment(),
		CreatedAt:          request.CreatedAt(),
	}

	items := make([]ChangeRequestItemDTO, 0, len(request.Items()))
	for _, item := range request.Items() {
		items = append(items, ChangeRequestItemDTO{
			ID:              item.ID,
			ChangeRequestID: request.ID(),
			MenuItemID:      item.MenuItemID,
			Quantity:        item.Quantity,
		})
	}

	return dto, items
}

// toDomain reconstructs a change request from its database rows.
func toDomain(dto ChangeRequestDTO, itemDTOs []ChangeRequestItemDTO) (*changereq.ChangeRequest, error) {
	style, err := menu.ParseServingStyle(dto.NewServingStyle)
	if err != nil {
		return nil, err
	}

	status, err := changereq.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	quote, err := changereq.NewQuote(dto.AlreadyPaid, dto.RecalculatedTotal, dto.ChangeFee)
	if err != nil {
		return nil, err
	}

	items := make([]changereq.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		items = append(items, changereq.Item{
			ID:              itemDTO.ID,
			ChangeRequestID: itemDTO.ChangeRequestID,
			MenuItemID:      itemDTO.MenuItemID,
			Quantity:        itemDTO.Quantity,
		})
	}

	return changereq.RestoreChangeRequest(
		dto.ID,
		dto.OrderID,
		dto.UserID,
		dto.NewDinnerTypeID,
		style,
		dto.NewDeliveryTime,
		dto.NewDeliveryAddress,
		items,
		quote,
		status,
		dto.AdminComment,
		dto.CreatedAt,
	)
}
