package models

type Warehouse struct {
	Id      uint   `json:"id" gorm:"primaryKey"`
	Code    string `json:"code" gorm:"not null;uniqueIndex"`
	Name    string `json:"name" gorm:"not null"`
	Address string `json:"address"`
	City    string `json:"city"`
	Active  bool   `json:"-" gorm:"default:true"`
}
