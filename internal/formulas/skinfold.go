package formulas

import (
	"math"

	"github.com/claude/bodyfat/internal/models"
)

// Jackson-Pollock 3-site. Men use chest/abdomen/thigh, women
// tricep/suprailiac/thigh.
func jacksonPollock3(r *reader) float64 {
	age := r.age()
	if !r.female() {
		s := r.sum(models.FieldChestSkinfold, models.FieldAbdominalSkinfold, models.FieldThighSkinfold)
		return siri(1.10938 - 0.0008267*s + 0.0000016*s*s - 0.0002574*age)
	}
	s := r.sum(models.FieldTricepSkinfold, models.FieldSuprailiacSkinfold, models.FieldThighSkinfold)
	return siri(1.0994921 - 0.0009929*s + 0.0000023*s*s - 0.0001392*age)
}

// durninBracket holds the density equation D = c - m*log10(sum) for an age
// range starting at minAge.
type durninBracket struct {
	minAge float64
	c, m   float64
}

// Ordered by descending minAge so the first match wins.
var (
	durninMale = []durninBracket{
		{50, 1.1715, 0.0779},
		{40, 1.1620, 0.0700},
		{30, 1.1422, 0.0544},
		{20, 1.1631, 0.0632},
		{17, 1.1620, 0.0630},
		{0, 1.1533, 0.0643},
	}
	durninFemale = []durninBracket{
		{50, 1.1339, 0.0645},
		{40, 1.1333, 0.0612},
		{30, 1.1423, 0.0632},
		{20, 1.1599, 0.0717},
		{17, 1.1549, 0.0678},
		{0, 1.1369, 0.0598},
	}
)

// Durnin-Womersley 4-site with age-bracketed density equations.
func durninWomersley(r *reader) float64 {
	age := r.age()
	logSum := math.Log10(r.sum(
		models.FieldBicepSkinfold,
		models.FieldTricepSkinfold,
		models.FieldSubscapularSkinfold,
		models.FieldSuprailiacSkinfold,
	))
	brackets := durninMale
	if r.female() {
		brackets = durninFemale
	}
	b := brackets[len(brackets)-1]
	for _, candidate := range brackets {
		if age >= candidate.minAge {
			b = candidate
			break
		}
	}
	return siri(b.c - b.m*logSum)
}

// Jackson-Pollock 4-site. Yields a percentage directly, without a density
// step.
func jacksonPollock4(r *reader) float64 {
	age := r.age()
	s := r.sum(
		models.FieldAbdominalSkinfold,
		models.FieldThighSkinfold,
		models.FieldTricepSkinfold,
		models.FieldSuprailiacSkinfold,
	)
	if !r.female() {
		return 0.29288*s - 0.0005*s*s + 0.15845*age - 5.76377
	}
	return 0.29669*s - 0.00043*s*s + 0.02963*age + 1.4072
}

var jackson7Sites = []models.Field{
	models.FieldChestSkinfold,
	models.FieldAbdominalSkinfold,
	models.FieldThighSkinfold,
	models.FieldTricepSkinfold,
	models.FieldSubscapularSkinfold,
	models.FieldSuprailiacSkinfold,
	models.FieldMidaxillarySkinfold,
}

// Jackson-Pollock 7-site.
func jacksonPollock7(r *reader) float64 {
	age := r.age()
	s := r.sum(jackson7Sites...)
	if !r.female() {
		return siri(1.112 - 0.00043499*s + 0.00000055*s*s - 0.00028826*age)
	}
	return siri(1.097 - 0.00046971*s + 0.00000056*s*s - 0.00012828*age)
}

var parrilloSites = []models.Field{
	models.FieldChestSkinfold,
	models.FieldAbdominalSkinfold,
	models.FieldThighSkinfold,
	models.FieldBicepSkinfold,
	models.FieldTricepSkinfold,
	models.FieldSubscapularSkinfold,
	models.FieldSuprailiacSkinfold,
	models.FieldLowerBackSkinfold,
	models.FieldCalfSkinfold,
}

// Parrillo 9-site. The same equation applies to both genders.
func parrillo(r *reader) float64 {
	s := r.sum(parrilloSites...)
	return s * 27 / r.pounds()
}
