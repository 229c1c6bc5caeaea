package entity

import "time"

// Product representa un producto del catálogo (medicamento o insumo).
// El núcleo de stock lo referencia, no lo administra.
type Product struct {
	ID            string
	Code          string
	Name          string
	UnitOfMeasure string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
