// Package catalogrepo provides read access to the dinner catalog: dinner
// types, menu items and the bundle lines that bind them. The catalog is
// seeded data, so the repository exposes no write operations.
package catalogrepo

import "dinner/internal/core/domain/model/menu"

// DinnerTypeDTO represents the database row for a dinner offering.
type DinnerTypeDTO struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	Name        string
	NameEn      string
	Description string
	BasePrice   int
}

// TableName overrides GORM's default naming convention.
func (DinnerTypeDTO) TableName() string {
	return "dinner_types"
}

// MenuItemDTO represents the database row for a stockable menu item.
type MenuItemDTO struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	Name     string
	NameEn   string
	Category string
	Price    int
}

// TableName overrides GORM's default naming convention.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// BundleItemDTO represents one default item line of a dinner type.
type BundleItemDTO struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	DinnerTypeID int64 `gorm:"index"`
	MenuItemID   int64
	Quantity     int
}

// TableName overrides GORM's default naming convention.
func (BundleItemDTO) TableName() string {
	return "dinner_menu_items"
}

func dinnerTypeToDomain(dto DinnerTypeDTO) menu.DinnerType {
	return menu.DinnerType{
		ID:          dto.ID,
		Name:        dto.Name,
		NameEn:      dto.NameEn,
		Description: dto.Description,
		BasePrice:   dto.BasePrice,
	}
}

func menuItemToDomain(dto MenuItemDTO) menu.MenuItem {
	return menu.MenuItem{
		ID:       dto.ID,
		Name:     dto.Name,
		NameEn:   dto.NameEn,
		Category: dto.Category,
		Price:    dto.Price,
	}
}

func bundleItemToDomain(dto BundleItemDTO) menu.BundleItem {
	return menu.BundleItem{
		DinnerTypeID: dto.DinnerTypeID,
		MenuItemID:   dto.MenuItemID,
		Quantity:     dto.Quantity,
	}
}
