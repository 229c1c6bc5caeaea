package entity

import "time"

// HospitalCenter representa una sede de la organización donde se almacena stock.
// Referenciado por el núcleo; su administración vive fuera de este módulo.
type HospitalCenter struct {
	ID        string
	Name      string
	City      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
