// Package nutrition holds the pure calculations behind the diary: per-entry
// calories, goal resolution, progress bands, and day grouping. Nothing here
// performs I/O or keeps state, so every function is safe to call from any
// goroutine.
package nutrition

import (
	"fmt"
	"math"
	"strings"

	"github.com/saadjs/caltrack/internal/model"
)

// CalculateCalories returns round(amount/100 * kcal per 100 g). Entries with a
// negative amount or a non-positive density contribute 0.
func CalculateCalories(e model.Entry) int {
	if !usable(e.AmountG) || !usable(e.CaloriesPer100G) {
		return 0
	}
	if e.CaloriesPer100G <= 0 || e.AmountG < 0 {
		return 0
	}
	return int(math.Round((e.AmountG / 100) * e.CaloriesPer100G))
}

// ValidateEntry explains why CalculateCalories would treat e as 0 kcal.
// It returns nil for entries that count normally.
func ValidateEntry(e model.Entry) error {
	var problems []string
	if !usable(e.AmountG) {
		problems = append(problems, "amount is not a finite number")
	} else if e.AmountG < 0 {
		problems = append(problems, fmt.Sprintf("amount %.2f g is negative", e.AmountG))
	}
	if !usable(e.CaloriesPer100G) {
		problems = append(problems, "calories per 100 g is not a finite number")
	} else if e.CaloriesPer100G <= 0 {
		problems = append(problems, fmt.Sprintf("calories per 100 g %.2f is not positive", e.CaloriesPer100G))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("entry %d (%s): %s", e.ID, e.Name, strings.Join(problems, "; "))
}

// ScaleNutrients scales the optional densities of e to the logged amount.
// Negative or non-finite densities count as 0.
func ScaleNutrients(e model.Entry) model.NutrientTotals {
	if !usable(e.AmountG) || e.AmountG < 0 {
		return model.NutrientTotals{}
	}
	factor := e.AmountG / 100
	return model.NutrientTotals{
		ProteinG:      density(e.ProteinPer100G) * factor,
		CarbsG:        density(e.CarbsPer100G) * factor,
		FatG:          density(e.FatPer100G) * factor,
		SaturatedFatG: density(e.SaturatedFatPer100G) * factor,
		SugarsG:       density(e.SugarsPer100G) * factor,
		SaltG:         density(e.SaltPer100G) * factor,
	}
}

// SumCalories adds CalculateCalories over entries.
func SumCalories(entries []model.Entry) int {
	total := 0
	for _, e := range entries {
		total += CalculateCalories(e)
	}
	return total
}

func density(v float64) float64 {
	if !usable(v) || v < 0 {
		return 0
	}
	return v
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
