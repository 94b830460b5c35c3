package ports

import (
	"context"

	"dinner/internal/core/domain/model/account"
	"dinner/internal/core/domain/model/menu"
)

// CatalogRepository defines the read contract for the dinner catalog.
type CatalogRepository interface {
	// GetDinnerType retrieves a dinner type by its identifier.
	GetDinnerType(ctx context.Context, id int64) (menu.DinnerType, error)

	// GetAllDinnerTypes retrieves the full dinner offering.
	GetAllDinnerTypes(ctx context.Context) ([]menu.DinnerType, error)

	// GetMenuItem retrieves a menu item by its identifier.
	GetMenuItem(ctx context.Context, id int64) (menu.MenuItem, error)

	// GetMenuItems retrieves the menu items with the given identifiers.
	GetMenuItems(ctx context.Context, ids []int64) ([]menu.MenuItem, error)

	// GetAllMenuItems retrieves every menu item.
	GetAllMenuItems(ctx context.Context) ([]menu.MenuItem, error)

	// GetBundleItems retrieves the default item lines of a dinner type.
	GetBundleItems(ctx context.Context, dinnerTypeID int64) ([]menu.BundleItem, error)
}

// UserRepository defines the read contract for the customer directory.
type UserRepository interface {
	// Get retrieves a customer by identifier.
	Get(ctx context.Context, id int64) (account.User, error)
}

// EmployeeRepository defines the read contract for the staff directory.
type EmployeeRepository interface {
	// Get retrieves an employee by identifier.
	Get(ctx context.Context, id int64) (account.Employee, error)

	// GetCouriers retrieves every employee who can take delivery runs.
	GetCouriers(ctx context.Context) ([]account.Employee, error)
}
