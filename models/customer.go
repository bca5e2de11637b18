package models

type Customer struct {
	Id   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	// Document is the fiscal id: NIT for companies, cédula for persons.
	Document     string `json:"document" gorm:"not null;uniqueIndex"`
	DocumentType string `json:"document_type" gorm:"default:'NIT'"` // NIT | CC | CE
	Email        string `json:"email" gorm:"not null"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Notes        string `json:"notes"`
	Active       bool   `json:"-" gorm:"default:true"`
}
