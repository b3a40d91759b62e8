package entity

// AccountCode representa un rubro presupuestal contra el que se imputa una
// solicitud de presupuesto.
type AccountCode struct {
	ID   string
	Code string
	Name string
}
