package scoring

// Class is the three-tier performance classification.
type Class int

const (
	Adequado Class = iota
	Atencao
	Intervencao
)

var classInfo = [...]struct {
	label, color, description string
}{
	Adequado:    {"Adequado", "#27ae60", "Desenvolvimento adequado para a idade"},
	Atencao:     {"Atenção", "#f39c12", "Desenvolvimento em progresso, acompanhar"},
	Intervencao: {"Intervenção", "#e74c3c", "Atraso significativo, intervenção recomendada"},
}

// Classify compares a percentage with the ideal for the age band.
// A gap of at most 5 points is Adequado, at most 15 is Atenção, beyond that
// Intervenção. Boundary values belong to the better tier.
func Classify(percentage, ideal float64) Class {
	diff := percentage - ideal
	switch {
	case diff >= -5:
		return Adequado
	case diff >= -15:
		return Atencao
	default:
		return Intervencao
	}
}

// Label is the display name of the class.
func (c Class) Label() string { return classInfo[c].label }

// Color is the hex color token used when rendering the class.
func (c Class) Color() string { return classInfo[c].color }

// Description is the one-line explanation shown next to the label.
func (c Class) Description() string { return classInfo[c].description }

func (c Class) String() string { return c.Label() }

// MarshalText encodes the class as its label.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.Label()), nil
}
