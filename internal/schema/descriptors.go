// Package schema describes which measurements each formula needs and the
// bounds a value must satisfy before a formula may run.
package schema

import (
	"github.com/claude/bodyfat/internal/models"
)

// Descriptor is the immutable reference entry for a formula.
type Descriptor struct {
	ID          models.FormulaID `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Accuracy    string           `json:"accuracy"`
	// Required applies to both genders; Male and Female are added on top.
	Required []models.Field `json:"required"`
	Male     []models.Field `json:"male,omitempty"`
	Female   []models.Field `json:"female,omitempty"`
}

var descriptors = map[models.FormulaID]Descriptor{
	models.FormulaYMCA: {
		ID:          models.FormulaYMCA,
		Name:        "YMCA",
		Description: "Estimate from waist circumference and body weight.",
		Accuracy:    "±5%",
		Required:    []models.Field{models.FieldWeight, models.FieldWaist},
	},
	models.FormulaMYMCA: {
		ID:          models.FormulaMYMCA,
		Name:        "Modified YMCA",
		Description: "YMCA method with additional wrist, hips and forearm measurements for women.",
		Accuracy:    "±4-5%",
		Required:    []models.Field{models.FieldWeight, models.FieldWaist},
		Female:      []models.Field{models.FieldWrist, models.FieldHips, models.FieldForearm},
	},
	models.FormulaNavy: {
		ID:          models.FormulaNavy,
		Name:        "U.S. Navy",
		Description: "Circumference method using height, neck and waist (plus hips for women).",
		Accuracy:    "±3-4%",
		Required:    []models.Field{models.FieldWeight, models.FieldHeight, models.FieldNeck, models.FieldWaist},
		Female:      []models.Field{models.FieldHips},
	},
	models.FormulaCovert: {
		ID:          models.FormulaCovert,
		Name:        "Covert Bailey",
		Description: "Age-adjusted circumference method from Covert Bailey's Fit or Fat.",
		Accuracy:    "±4%",
		Required:    []models.Field{models.FieldAge, models.FieldWeight, models.FieldHips, models.FieldWrist},
		Male:        []models.Field{models.FieldWaist, models.FieldForearm},
		Female:      []models.Field{models.FieldThigh, models.FieldCalf},
	},
	models.FormulaJack3: {
		ID:          models.FormulaJack3,
		Name:        "Jackson-Pollock 3-site",
		Description: "Three skinfold sites converted via body density (Siri equation).",
		Accuracy:    "±3-4%",
		Required:    []models.Field{models.FieldAge, models.FieldWeight, models.FieldThighSkinfold},
		Male:        []models.Field{models.FieldChestSkinfold, models.FieldAbdominalSkinfold},
		Female:      []models.Field{models.FieldTricepSkinfold, models.FieldSuprailiacSkinfold},
	},
	models.FormulaDurnin: {
		ID:          models.FormulaDurnin,
		Name:        "Durnin-Womersley",
		Description: "Four skinfold sites with age-bracketed density equations.",
		Accuracy:    "±3.5%",
		Required: []models.Field{
			models.FieldAge, models.FieldWeight,
			models.FieldBicepSkinfold, models.FieldTricepSkinfold,
			models.FieldSubscapularSkinfold, models.FieldSuprailiacSkinfold,
		},
	},
	models.FormulaJack4: {
		ID:          models.FormulaJack4,
		Name:        "Jackson-Pollock 4-site",
		Description: "Four skinfold sites with a direct percentage equation.",
		Accuracy:    "±3-4%",
		Required: []models.Field{
			models.FieldAge, models.FieldWeight,
			models.FieldAbdominalSkinfold, models.FieldThighSkinfold,
			models.FieldTricepSkinfold, models.FieldSuprailiacSkinfold,
		},
	},
	models.FormulaJack7: {
		ID:          models.FormulaJack7,
		Name:        "Jackson-Pollock 7-site",
		Description: "Seven skinfold sites converted via body density (Siri equation).",
		Accuracy:    "±3%",
		Required: []models.Field{
			models.FieldAge, models.FieldWeight,
			models.FieldChestSkinfold, models.FieldAbdominalSkinfold, models.FieldThighSkinfold,
			models.FieldTricepSkinfold, models.FieldSubscapularSkinfold,
			models.FieldSuprailiacSkinfold, models.FieldMidaxillarySkinfold,
		},
	},
	models.FormulaParrillo: {
		ID:          models.FormulaParrillo,
		Name:        "Parrillo",
		Description: "Nine skinfold sites relative to body weight; same equation for both genders.",
		Accuracy:    "±3-4%",
		Required: []models.Field{
			models.FieldWeight,
			models.FieldChestSkinfold, models.FieldAbdominalSkinfold, models.FieldThighSkinfold,
			models.FieldBicepSkinfold, models.FieldTricepSkinfold, models.FieldSubscapularSkinfold,
			models.FieldSuprailiacSkinfold, models.FieldLowerBackSkinfold, models.FieldCalfSkinfold,
		},
	},
}

// Lookup returns the descriptor for id.
func Lookup(id models.FormulaID) (Descriptor, bool) {
	d, ok := descriptors[id]
	return d, ok
}

// RequiredFields returns the fields id needs for gender, in catalog order.
// Unknown formulas need nothing.
func RequiredFields(id models.FormulaID, gender models.Gender) []models.Field {
	d, ok := descriptors[id]
	if !ok {
		return nil
	}
	fields := append([]models.Field{}, d.Required...)
	switch gender {
	case models.GenderMale:
		fields = append(fields, d.Male...)
	case models.GenderFemale:
		fields = append(fields, d.Female...)
	}
	models.SortFields(fields)
	return fields
}
