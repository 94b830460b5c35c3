package catalogrepo

import (
	"context"
	"errors"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetDinnerType retrieves a dinner type by ID.
func (r *GormCatalogRepository) GetDinnerType(ctx context.Context, id int64) (menu.DinnerType, error) {
	var dto DinnerTypeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return menu.DinnerType{}, errs.NewObjectNotFoundError("dinner type", id)
		}
		return menu.DinnerType{}, err
	}

	return dinnerTypeToDomain(dto), nil
}

// GetAllDinnerTypes retrieves the full dinner offering.
func (r *GormCatalogRepository) GetAllDinnerTypes(ctx context.Context) ([]menu.DinnerType, error) {
	var dtos []DinnerTypeDTO
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	dinnerTypes := make([]menu.DinnerType, 0, len(dtos))
	for _, dto := range dtos {
		dinnerTypes = append(dinnerTypes, dinnerTypeToDomain(dto))
	}

	return dinnerTypes, nil
}

// GetMenuItem retrieves a menu item by ID.
func (r *GormCatalogRepository) GetMenuItem(ctx context.Context, id int64) (menu.MenuItem, error) {
	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return menu.MenuItem{}, errs.NewObjectNotFoundError("menu item", id)
		}
		return menu.MenuItem{}, err
	}

	return menuItemToDomain(dto), nil
}

// GetMenuItems retrieves the menu items with the given identifiers.
func (r *GormCatalogRepository) GetMenuItems(ctx context.Context, ids []int64) ([]menu.MenuItem, error) {
	if len(ids) == 0 {
		return []menu.MenuItem{}, nil
	}

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]menu.MenuItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, menuItemToDomain(dto))
	}

	return items, nil
}

// GetAllMenuItems retrieves every menu item.
func (r *GormCatalogRepository) GetAllMenuItems(ctx context.Context) ([]menu.MenuItem, error) {
	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]menu.MenuItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, menuItemToDomain(dto))
	}

	return items, nil
}

// GetBundleItems retrieves the default item lines of a dinner type.
func (r *GormCatalogRepository) GetBundleItems(ctx context.Context, dinnerTypeID int64) ([]menu.BundleItem, error) {
	var dtos []BundleItemDTO
	err := r.db.WithContext(ctx).
		Where("dinner_type_id = ?", dinnerTypeID).
		Order("id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	bundle := make([]menu.BundleItem, 0, len(dtos))
	for _, dto := range dtos {
		bundle = append(bundle, bundleItemToDomain(dto))
	}

	return bundle, nil
}
