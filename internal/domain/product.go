package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID         int64
	Name       string
	Category   string
	Price      int64 // Цена хранится в копейках
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	IsArchived bool
}

func NewProduct(name string, category string, price int64) *Product {
	return &Product{
		Name:     name,
		Category: category,
		Price:    price,
	}
}
