package formulas

import (
	"math"

	"github.com/claude/bodyfat/internal/models"
)

// YMCA estimates body fat from waist and weight in imperial units.
func ymca(r *reader) float64 {
	waist := r.inches(models.FieldWaist)
	weight := r.pounds()
	constant := -98.42
	if r.female() {
		constant = -76.76
	}
	return 100 * (4.15*waist - 0.082*weight + constant) / weight
}

// Modified YMCA. The female equation estimates fat mass in pounds from
// wrist, waist, hips and forearm.
func modifiedYMCA(r *reader) float64 {
	waist := r.inches(models.FieldWaist)
	weight := r.pounds()
	if !r.female() {
		return ((4.15*waist - 0.082*weight - 94.42) / weight) * 100
	}
	wrist := r.inches(models.FieldWrist)
	hips := r.inches(models.FieldHips)
	forearm := r.inches(models.FieldForearm)
	fat := 0.268*weight - 0.318*wrist + 0.157*waist + 0.245*hips - 0.434*forearm - 8.987
	return (fat / weight) * 100
}

// U.S. Navy circumference method.
func navy(r *reader) float64 {
	height := r.inches(models.FieldHeight)
	neck := r.inches(models.FieldNeck)
	waist := r.inches(models.FieldWaist)
	if !r.female() {
		return 86.01*math.Log10(waist-neck) - 70.041*math.Log10(height) + 36.76
	}
	hips := r.inches(models.FieldHips)
	return 163.205*math.Log10(waist+hips-neck) - 97.684*math.Log10(height) - 78.387
}

// Covert Bailey. Coefficients change after age 30.
func covertBailey(r *reader) float64 {
	age := r.age()
	wrist := r.inches(models.FieldWrist)
	hips := r.inches(models.FieldHips)
	if !r.female() {
		waist := r.inches(models.FieldWaist)
		forearm := r.inches(models.FieldForearm)
		k := 2.7
		if age <= 30 {
			k = 3
		}
		return waist + 0.5*hips - k*forearm - wrist
	}
	thigh := r.inches(models.FieldThigh)
	calf := r.inches(models.FieldCalf)
	m := 1.0
	if age <= 30 {
		m = 0.8
	}
	return hips + m*thigh - 2*calf - wrist
}
