// Package accountrepo provides read access to the people side of the
// domain: the customer directory and the staff roster. Both are managed
// outside the ordering flow, so the repositories expose no write operations.
package accountrepo

import "dinner/internal/core/domain/model/account"

// UserDTO represents the database row for a customer.
type UserDTO struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	Name           string
	Email          string
	Address        string
	Phone          string
	Consent        bool
	LoyaltyConsent bool
}

// TableName overrides GORM's default naming convention.
func (UserDTO) TableName() string {
	return "users"
}

// EmployeeDTO represents the database row for a staff member.
type EmployeeDTO struct {
	ID   int64 `gorm:"primaryKey;autoIncrement"`
	Name string
	Role string `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (EmployeeDTO) TableName() string {
	return "employees"
}

func userToDomain(dto UserDTO) account.User {
	return account.User{
		ID:             dto.ID,
		Name:           dto.Name,
		Email:          dto.Email,
		Address:        dto.Address,
		Phone:          dto.Phone,
		Consent:        dto.Consent,
		LoyaltyConsent: dto.LoyaltyConsent,
	}
}

func employeeToDomain(dto EmployeeDTO) account.Employee {
	return account.Employee{
		ID:   dto.ID,
		Name: dto.Name,
		Role: dto.Role,
	}
}
