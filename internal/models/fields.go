package models

import (
	"sort"
	"strings"
)

// Field names a single measurement in an input record.
type Field string

// Canonical measurement field names.
const (
	FieldAge    Field = "age"
	FieldWeight Field = "weight"
	FieldHeight Field = "height"

	FieldNeck    Field = "neckCircumference"
	FieldWaist   Field = "waistCircumference"
	FieldHips    Field = "hipsCircumference"
	FieldWrist   Field = "wristCircumference"
	FieldForearm Field = "forearmCircumference"
	FieldThigh   Field = "thighCircumference"
	FieldCalf    Field = "calfCircumference"

	FieldChestSkinfold       Field = "chestSkinfold"
	FieldAbdominalSkinfold   Field = "abdominalSkinfold"
	FieldThighSkinfold       Field = "thighSkinfold"
	FieldTricepSkinfold      Field = "tricepSkinfold"
	FieldBicepSkinfold       Field = "bicepSkinfold"
	FieldSubscapularSkinfold Field = "subscapularSkinfold"
	FieldSuprailiacSkinfold  Field = "suprailiacSkinfold"
	FieldMidaxillarySkinfold Field = "midaxillarySkinfold"
	FieldLowerBackSkinfold   Field = "lowerBackSkinfold"
	FieldCalfSkinfold        Field = "calfSkinfold"
)

// FieldInfo describes how a field is labelled and converted.
type FieldInfo struct {
	Field      Field          `json:"field"`
	Label      string         `json:"label"`
	Conversion ConversionType `json:"conversion"`
}

// fieldCatalog lists every known field in display order.
var fieldCatalog = []FieldInfo{
	{FieldAge, "Age", ConversionNone},
	{FieldWeight, "Weight", ConversionWeight},
	{FieldHeight, "Height", ConversionLength},
	{FieldNeck, "Neck circumference", ConversionLength},
	{FieldWaist, "Waist circumference", ConversionLength},
	{FieldHips, "Hips circumference", ConversionLength},
	{FieldWrist, "Wrist circumference", ConversionLength},
	{FieldForearm, "Forearm circumference", ConversionLength},
	{FieldThigh, "Thigh circumference", ConversionLength},
	{FieldCalf, "Calf circumference", ConversionLength},
	{FieldChestSkinfold, "Chest skinfold", ConversionSkinfold},
	{FieldAbdominalSkinfold, "Abdominal skinfold", ConversionSkinfold},
	{FieldThighSkinfold, "Thigh skinfold", ConversionSkinfold},
	{FieldTricepSkinfold, "Tricep skinfold", ConversionSkinfold},
	{FieldBicepSkinfold, "Bicep skinfold", ConversionSkinfold},
	{FieldSubscapularSkinfold, "Subscapular skinfold", ConversionSkinfold},
	{FieldSuprailiacSkinfold, "Suprailiac skinfold", ConversionSkinfold},
	{FieldMidaxillarySkinfold, "Midaxillary skinfold", ConversionSkinfold},
	{FieldLowerBackSkinfold, "Lower back skinfold", ConversionSkinfold},
	{FieldCalfSkinfold, "Calf skinfold", ConversionSkinfold},
}

var (
	fieldIndex = map[Field]int{}
	// fieldAliases maps lowercased names (canonical and short forms) to fields.
	fieldAliases = map[string]Field{
		"neck":        FieldNeck,
		"waist":       FieldWaist,
		"hips":        FieldHips,
		"hip":         FieldHips,
		"wrist":       FieldWrist,
		"forearm":     FieldForearm,
		"thigh":       FieldThigh,
		"calf":        FieldCalf,
		"chest":       FieldChestSkinfold,
		"abdomen":     FieldAbdominalSkinfold,
		"abdominal":   FieldAbdominalSkinfold,
		"tricep":      FieldTricepSkinfold,
		"triceps":     FieldTricepSkinfold,
		"bicep":       FieldBicepSkinfold,
		"biceps":      FieldBicepSkinfold,
		"subscapular": FieldSubscapularSkinfold,
		"suprailiac":  FieldSuprailiacSkinfold,
		"midaxillary": FieldMidaxillarySkinfold,
		"lowerback":   FieldLowerBackSkinfold,
		"lower_back":  FieldLowerBackSkinfold,
	}
)

func init() {
	for i, info := range fieldCatalog {
		fieldIndex[info.Field] = i
		fieldAliases[strings.ToLower(string(info.Field))] = info.Field
	}
}

// Fields returns every known field in display order.
func Fields() []FieldInfo {
	out := make([]FieldInfo, len(fieldCatalog))
	copy(out, fieldCatalog)
	return out
}

// LookupField returns the catalog entry for f.
func LookupField(f Field) (FieldInfo, bool) {
	i, ok := fieldIndex[f]
	if !ok {
		return FieldInfo{}, false
	}
	return fieldCatalog[i], true
}

// FieldConversion returns the conversion type of f, or ConversionNone for
// unknown fields.
func FieldConversion(f Field) ConversionType {
	if info, ok := LookupField(f); ok {
		return info.Conversion
	}
	return ConversionNone
}

// NormalizeField maps a possibly-abbreviated field name to its canonical
// form. Returns the canonical field and true if recognized, or the original
// string and false if unknown.
func NormalizeField(raw string) (Field, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if f, ok := fieldAliases[lower]; ok {
		return f, true
	}
	return Field(raw), false
}

// SortFields orders fields by catalog position; unknown fields sort last by name.
func SortFields(fields []Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		a, aok := fieldIndex[fields[i]]
		b, bok := fieldIndex[fields[j]]
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		}
		return fields[i] < fields[j]
	})
}
