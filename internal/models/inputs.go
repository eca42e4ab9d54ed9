package models

// Inputs is a standardized measurement record. Values holds only the
// fields that were supplied; a missing key means "not measured".
type Inputs struct {
	Gender Gender
	Values map[Field]float64
}

// NewInputs copies values into a fresh record for the given gender.
func NewInputs(gender Gender, values map[Field]float64) Inputs {
	in := Inputs{Gender: gender, Values: make(map[Field]float64, len(values))}
	for f, v := range values {
		in.Values[f] = v
	}
	return in
}

// Get returns the value of f, or 0 when it was not supplied. Formulas read
// fields through Get, so calling one without prior validation silently
// computes with zeros.
func (in Inputs) Get(f Field) float64 {
	return in.Values[f]
}

// Lookup returns the value of f and whether it was supplied.
func (in Inputs) Lookup(f Field) (float64, bool) {
	v, ok := in.Values[f]
	return v, ok
}

// With returns a copy of in with f set to v.
func (in Inputs) With(f Field, v float64) Inputs {
	out := NewInputs(in.Gender, in.Values)
	out.Values[f] = v
	return out
}

// WithGender returns a copy of in tagged with gender.
func (in Inputs) WithGender(gender Gender) Inputs {
	return NewInputs(gender, in.Values)
}
