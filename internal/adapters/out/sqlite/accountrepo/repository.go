package accountrepo

import (
	"context"
	"errors"

	"dinner/internal/core/domain/model/account"
	"dinner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM customer directory repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get retrieves a customer by ID.
func (r *GormUserRepository) Get(ctx context.Context, id int64) (account.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.User{}, errs.NewObjectNotFoundError("user", id)
		}
		return account.User{}, err
	}

	return userToDomain(dto), nil
}

// GormEmployeeRepository implements EmployeeRepository using GORM.
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GORM staff roster repository.
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Get retrieves an employee by ID.
func (r *GormEmployeeRepository) Get(ctx context.Context, id int64) (account.Employee, error) {
	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.Employee{}, errs.NewObjectNotFoundError("employee", id)
		}
		return account.Employee{}, err
	}

	return employeeToDomain(dto), nil
}

// GetCouriers retrieves every employee who can take delivery runs.
func (r *GormEmployeeRepository) GetCouriers(ctx context.Context) ([]account.Employee, error) {
	var dtos []EmployeeDTO
	err := r.db.WithContext(ctx).
		Where("role = ?", account.RoleCourier).
		Order("name ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]account.Employee, 0, len(dtos))
	for _, dto := range dtos {
		couriers = append(couriers, employeeToDomain(dto))
	}

	return couriers, nil
}
