package schema

import (
	"math"
	"testing"

	"github.com/claude/bodyfat/internal/models"
)

func inputs(v map[models.Field]float64) models.Inputs {
	return models.NewInputs("", v)
}

func sameFields(a, b []models.Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestRequiredFieldsByGender verifies gender-specific field subsets are added
// on top of the shared requirements.
func TestRequiredFieldsByGender(t *testing.T) {
	cases := []struct {
		id     models.FormulaID
		gender models.Gender
		want   []models.Field
	}{
		{models.FormulaYMCA, models.GenderFemale, []models.Field{models.FieldWeight, models.FieldWaist}},
		{models.FormulaMYMCA, models.GenderMale, []models.Field{models.FieldWeight, models.FieldWaist}},
		{models.FormulaMYMCA, models.GenderFemale, []models.Field{
			models.FieldWeight, models.FieldWaist, models.FieldHips, models.FieldWrist, models.FieldForearm}},
		{models.FormulaNavy, models.GenderFemale, []models.Field{
			models.FieldWeight, models.FieldHeight, models.FieldNeck, models.FieldWaist, models.FieldHips}},
		{models.FormulaJack3, models.GenderMale, []models.Field{
			models.FieldAge, models.FieldWeight, models.FieldChestSkinfold, models.FieldAbdominalSkinfold, models.FieldThighSkinfold}},
		{models.FormulaJack3, models.GenderFemale, []models.Field{
			models.FieldAge, models.FieldWeight, models.FieldThighSkinfold, models.FieldTricepSkinfold, models.FieldSuprailiacSkinfold}},
		{models.FormulaCovert, models.GenderMale, []models.Field{
			models.FieldAge, models.FieldWeight, models.FieldWaist, models.FieldHips, models.FieldWrist, models.FieldForearm}},
		{models.FormulaCovert, models.GenderFemale, []models.Field{
			models.FieldAge, models.FieldWeight, models.FieldHips, models.FieldWrist, models.FieldThigh, models.FieldCalf}},
	}
	for _, tc := range cases {
		if got := RequiredFields(tc.id, tc.gender); !sameFields(got, tc.want) {
			t.Errorf("RequiredFields(%s, %s) = %v, want %v", tc.id, tc.gender, got, tc.want)
		}
	}
	if got := RequiredFields("bmi", models.GenderMale); got != nil {
		t.Errorf("RequiredFields(unknown) = %v, want nil", got)
	}
}

func TestEveryFormulaHasDescriptor(t *testing.T) {
	ids := []models.FormulaID{
		models.FormulaYMCA, models.FormulaMYMCA, models.FormulaNavy, models.FormulaCovert,
		models.FormulaJack3, models.FormulaDurnin, models.FormulaJack4, models.FormulaJack7, models.FormulaParrillo,
	}
	for _, id := range ids {
		d, ok := Lookup(id)
		if !ok {
			t.Errorf("no descriptor for %s", id)
			continue
		}
		if d.ID != id || d.Name == "" || d.Description == "" || d.Accuracy == "" {
			t.Errorf("incomplete descriptor for %s: %+v", id, d)
		}
	}
	if d, _ := Lookup(models.FormulaParrillo); len(d.Required) != 10 {
		t.Errorf("parrillo requires %d fields, want weight + 9 sites", len(d.Required))
	}
}

func TestBoundsFor(t *testing.T) {
	cases := []struct {
		f    models.Field
		sys  models.MeasurementSystem
		want Bounds
	}{
		{models.FieldWeight, models.SystemMetric, Bounds{20, 300}},
		{models.FieldWeight, models.SystemImperial, Bounds{44, 661}},
		{models.FieldHeight, models.SystemImperial, Bounds{39.4, 98.4}},
		{models.FieldWaist, models.SystemMetric, Bounds{1, 200}},
		{models.FieldCalf, models.SystemImperial, Bounds{0.4, 78.7}},
		{models.FieldWrist, models.SystemMetric, Bounds{1, 50}},
		{models.FieldWrist, models.SystemImperial, Bounds{0.4, 19.7}},
		{models.FieldTricepSkinfold, models.SystemMetric, Bounds{1, 100}},
		{models.FieldTricepSkinfold, models.SystemImperial, Bounds{0.04, 3.94}},
		{models.FieldAge, models.SystemImperial, Bounds{0, 120}},
	}
	for _, tc := range cases {
		got, ok := BoundsFor(tc.f, tc.sys)
		if !ok || got != tc.want {
			t.Errorf("BoundsFor(%s, %s) = %v, %v; want %v", tc.f, tc.sys, got, ok, tc.want)
		}
	}
	if _, ok := BoundsFor("shoeSize", models.SystemMetric); ok {
		t.Error("expected no bounds for unknown field")
	}
}

func TestValidateInputsSuccess(t *testing.T) {
	res := ValidateInputs(models.FormulaYMCA, inputs(map[models.Field]float64{
		models.FieldWeight: 80, models.FieldWaist: 85,
	}), models.GenderMale, models.SystemMetric)
	if !res.Success || len(res.Errors) != 0 {
		t.Errorf("got %+v, want success", res)
	}
}

// TestValidateInputsMissingAndOutOfRange verifies every offending field gets
// its own message.
func TestValidateInputsMissingAndOutOfRange(t *testing.T) {
	res := ValidateInputs(models.FormulaNavy, inputs(map[models.Field]float64{
		models.FieldWeight: 350,
		models.FieldHeight: 175,
		models.FieldWaist:  math.NaN(),
	}), models.GenderFemale, models.SystemMetric)

	if res.Success {
		t.Fatal("expected failure")
	}
	want := map[models.Field]string{
		models.FieldWeight: "Weight must be between 20 and 300 kg",
		models.FieldNeck:   "Neck circumference is required",
		models.FieldWaist:  "Waist circumference must be a valid number",
		models.FieldHips:   "Hips circumference is required",
	}
	if len(res.Errors) != len(want) {
		t.Errorf("errors = %v, want %d entries", res.Errors, len(want))
	}
	for f, msg := range want {
		if res.Errors[f] != msg {
			t.Errorf("errors[%s] = %q, want %q", f, res.Errors[f], msg)
		}
	}
}

// TestValidateInputsGenderSpecific verifies female-only fields are not
// demanded from men.
func TestValidateInputsGenderSpecific(t *testing.T) {
	v := map[models.Field]float64{models.FieldWeight: 80, models.FieldWaist: 85}
	if res := ValidateInputs(models.FormulaMYMCA, inputs(v), models.GenderMale, models.SystemMetric); !res.Success {
		t.Errorf("male mymca: %v", res.Errors)
	}
	res := ValidateInputs(models.FormulaMYMCA, inputs(v), models.GenderFemale, models.SystemMetric)
	for _, f := range []models.Field{models.FieldWrist, models.FieldHips, models.FieldForearm} {
		if _, ok := res.Errors[f]; !ok {
			t.Errorf("female mymca: expected error for %s", f)
		}
	}
}

// TestValidateInputsWristCap verifies wrist uses its tighter bound rather
// than the general circumference bound.
func TestValidateInputsWristCap(t *testing.T) {
	v := map[models.Field]float64{
		models.FieldAge: 35, models.FieldWeight: 80, models.FieldWaist: 85,
		models.FieldHips: 95, models.FieldForearm: 28, models.FieldWrist: 60,
	}
	res := ValidateInputs(models.FormulaCovert, inputs(v), models.GenderMale, models.SystemMetric)
	if got := res.Errors[models.FieldWrist]; got != "Wrist circumference must be between 1 and 50 cm" {
		t.Errorf("wrist error = %q", got)
	}
	if len(res.Errors) != 1 {
		t.Errorf("errors = %v, want only wrist", res.Errors)
	}
}

func TestValidateInputsImperialBounds(t *testing.T) {
	v := map[models.Field]float64{models.FieldWeight: 40, models.FieldWaist: 80}
	res := ValidateInputs(models.FormulaYMCA, inputs(v), models.GenderMale, models.SystemImperial)
	if got := res.Errors[models.FieldWeight]; got != "Weight must be between 44 and 661 lb" {
		t.Errorf("weight error = %q", got)
	}
	if got := res.Errors[models.FieldWaist]; got != "Waist circumference must be between 0.4 and 78.7 in" {
		t.Errorf("waist error = %q", got)
	}
}

// TestValidateInputsImperialSkinfolds verifies imperial skinfold bounds are
// in inches while millimetre readings pass only in the metric system.
func TestValidateInputsImperialSkinfolds(t *testing.T) {
	v := map[models.Field]float64{
		models.FieldAge: 30, models.FieldWeight: 176,
		models.FieldChestSkinfold: 15, models.FieldAbdominalSkinfold: 25, models.FieldThighSkinfold: 20,
	}
	res := ValidateInputs(models.FormulaJack3, inputs(v), models.GenderMale, models.SystemImperial)
	if got := res.Errors[models.FieldChestSkinfold]; got != "Chest skinfold must be between 0.04 and 3.94 in" {
		t.Errorf("chest error = %q", got)
	}

	v[models.FieldWeight] = 80
	if res := ValidateInputs(models.FormulaJack3, inputs(v), models.GenderMale, models.SystemMetric); !res.Success {
		t.Errorf("metric errors = %v, want success", res.Errors)
	}
}

func TestValidateInputsBoundaryInclusive(t *testing.T) {
	v := map[models.Field]float64{models.FieldWeight: 20, models.FieldWaist: 200}
	if res := ValidateInputs(models.FormulaYMCA, inputs(v), models.GenderMale, models.SystemMetric); !res.Success {
		t.Errorf("bounds should be inclusive: %v", res.Errors)
	}
	v = map[models.Field]float64{models.FieldWeight: 20, models.FieldWaist: 0}
	if res := ValidateInputs(models.FormulaYMCA, inputs(v), models.GenderMale, models.SystemMetric); res.Success {
		t.Error("waist 0 should be rejected")
	}
}

func TestValidateInputsIgnoresUnusedFields(t *testing.T) {
	v := map[models.Field]float64{models.FieldWeight: 80, models.FieldWaist: 85, models.FieldNeck: -5}
	if res := ValidateInputs(models.FormulaYMCA, inputs(v), models.GenderMale, models.SystemMetric); !res.Success {
		t.Errorf("unused field rejected: %v", res.Errors)
	}
}

func TestValidateInputsUnknownFormula(t *testing.T) {
	res := ValidateInputs("bmi", inputs(nil), models.GenderMale, models.SystemMetric)
	if res.Success {
		t.Fatal("expected failure")
	}
	if _, ok := res.Errors[FieldFormula]; !ok {
		t.Errorf("errors = %v, want formula entry", res.Errors)
	}
}

func TestFieldSpecs(t *testing.T) {
	specs, err := FieldSpecs(models.FormulaNavy, models.GenderMale, models.SystemImperial)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 4 {
		t.Fatalf("len = %d, want 4", len(specs))
	}
	first := specs[0]
	if first.Field != models.FieldWeight || first.Unit != "lb" || first.Min != 44 || first.Max != 661 {
		t.Errorf("weight spec = %+v", first)
	}
	if specs[1].Field != models.FieldHeight || specs[1].Unit != "in" || specs[1].Label != "Height" {
		t.Errorf("height spec = %+v", specs[1])
	}

	if _, err := FieldSpecs("bmi", models.GenderMale, models.SystemMetric); err == nil {
		t.Error("expected error for unknown formula")
	}
	if _, err := FieldSpecs(models.FormulaNavy, models.GenderMale, "nautical"); err == nil {
		t.Error("expected error for unknown system")
	}
}
