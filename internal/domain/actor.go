package domain

// Actor identifica quién ejecuta una operación del núcleo y desde qué centro.
// Se pasa explícitamente como argumento; el núcleo nunca lee estado global de sesión.
type Actor struct {
	ID       string
	CenterID string
	Role     string
}

// Valid exige al menos el ID del actor (los flujos externos siempre lo conocen).
func (a Actor) Valid() bool {
	return a.ID != ""
}
