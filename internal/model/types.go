package model

type Entry struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	AmountG             float64 `json:"amount_g"`
	CaloriesPer100G     float64 `json:"calories_per_100g"`
	ProteinPer100G      float64 `json:"protein_per_100g"`
	CarbsPer100G        float64 `json:"carbs_per_100g"`
	FatPer100G          float64 `json:"fat_per_100g"`
	SaturatedFatPer100G float64 `json:"saturated_fat_per_100g"`
	SugarsPer100G       float64 `json:"sugars_per_100g"`
	SaltPer100G         float64 `json:"salt_per_100g"`
	// CreatedAt is unix milliseconds, assigned by the entry store.
	CreatedAt int64 `json:"created_at"`
}

// NewEntry carries the caller-supplied fields of an entry. The store assigns
// ID and CreatedAt.
type NewEntry struct {
	Name                string  `json:"name"`
	AmountG             float64 `json:"amount_g"`
	CaloriesPer100G     float64 `json:"calories_per_100g"`
	ProteinPer100G      float64 `json:"protein_per_100g"`
	CarbsPer100G        float64 `json:"carbs_per_100g"`
	FatPer100G          float64 `json:"fat_per_100g"`
	SaturatedFatPer100G float64 `json:"saturated_fat_per_100g"`
	SugarsPer100G       float64 `json:"sugars_per_100g"`
	SaltPer100G         float64 `json:"salt_per_100g"`
}

type NutrientTotals struct {
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
	SaturatedFatG float64 `json:"saturated_fat_g"`
	SugarsG       float64 `json:"sugars_g"`
	SaltG         float64 `json:"salt_g"`
}

func (n NutrientTotals) Add(o NutrientTotals) NutrientTotals {
	return NutrientTotals{
		ProteinG:      n.ProteinG + o.ProteinG,
		CarbsG:        n.CarbsG + o.CarbsG,
		FatG:          n.FatG + o.FatG,
		SaturatedFatG: n.SaturatedFatG + o.SaturatedFatG,
		SugarsG:       n.SugarsG + o.SugarsG,
		SaltG:         n.SaltG + o.SaltG,
	}
}

type DailyBucket struct {
	Date          string         `json:"date"`
	Entries       []Entry        `json:"entries"`
	TotalCalories int            `json:"total_calories"`
	Nutrients     NutrientTotals `json:"nutrients"`
}
