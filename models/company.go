package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant organization. Lives in the public schema;
// all of its operational data lives in its own Postgres schema.
type Company struct {
	Id          string `json:"id" gorm:"primaryKey"`
	CompanyName string `json:"company_name" gorm:"not null;unique"`
	// NIT is the Colombian tax id (Número de Identificación Tributaria).
	NIT        string `json:"nit" gorm:"not null"`
	Address    string `json:"address" gorm:"not null"`
	City       string `json:"city" gorm:"not null"`
	Country    string `json:"country" gorm:"not null;default:'Colombia'"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	UserId     string `json:"-"`
	User       User   `json:"user" gorm:"foreignKey:UserId;references:Id"`
	SchemaName string `json:"-"`
	Active     bool   `json:"active" gorm:"default:true"`
}

func (company *Company) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	company.Id = uuid.NewString()
	return
}
