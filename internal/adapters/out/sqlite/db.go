package sqlite

import (
	"fmt"

	"dinner/internal/adapters/out/sqlite/accountrepo"
	"dinner/internal/adapters/out/sqlite/catalogrepo"
	"dinner/internal/adapters/out/sqlite/changereqrepo"
	"dinner/internal/adapters/out/sqlite/inventoryrepo"
	"dinner/internal/adapters/out/sqlite/orderrepo"
	"dinner/internal/adapters/out/sqlite/schedulerepo"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB opens the SQLite database at path and prepares it for concurrent
// use. The busy timeout makes colliding writers wait instead of failing
// immediately, and foreign keys are enforced so orphan lines cannot appear.
func OpenDB(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection sidesteps most writer collisions; SQLite
	// serializes writes anyway.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates or updates the schema for every persisted aggregate and
// read-side table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&inventoryrepo.ItemStockDTO{},
		&inventoryrepo.ReservationDTO{},
		&schedulerepo.DeliveryScheduleDTO{},
		&changereqrepo.ChangeRequestDTO{},
		&changereqrepo.ChangeRequestItemDTO{},
		&accountrepo.UserDTO{},
		&accountrepo.EmployeeDTO{},
		&catalogrepo.DinnerTypeDTO{},
		&catalogrepo.MenuItemDTO{},
		&catalogrepo.BundleItemDTO{},
	)
}
