package repository

import "github.com/jmedinae/stock-hospitalario/internal/domain/entity"

// HospitalCenterRepository define el puerto de lectura de centros hospitalarios.
type HospitalCenterRepository interface {
	GetByID(id string) (*entity.HospitalCenter, error)
	List(limit, offset int) ([]*entity.HospitalCenter, error)
}
