package repository

import "github.com/jmedinae/stock-hospitalario/internal/domain/entity"

// ProductRepository define el puerto de lectura del catálogo de productos.
// El núcleo solo valida existencia; el catálogo se administra fuera.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
