package nutrition

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/saadjs/caltrack/internal/model"
)

const (
	// DefaultGoal is shown when no usable goal exists.
	DefaultGoal = 2000

	// KcalPerKg is the energy equivalent of one kilogram of body mass.
	KcalPerKg = 7700

	MinWeeklyWeightGoalKg  = -2.0
	MaxWeeklyWeightGoalKg  = 2.0
	WeeklyWeightGoalStepKg = 0.25
)

var activityFactors = map[model.ActivityLevel]float64{
	model.ActivitySedentary: 1.2,
	model.ActivityLight:     1.375,
	model.ActivityModerate:  1.55,
	model.ActivityVery:      1.725,
}

// Biometrics are the advanced-mode inputs as entered by the user.
type Biometrics struct {
	Age                string
	Sex                string
	HeightCm           string
	WeightKg           string
	ActivityLevel      string
	WeeklyWeightGoalKg string
}

// BiometricsFromProfile extracts the resolver inputs from p.
func BiometricsFromProfile(p model.Profile) Biometrics {
	return Biometrics{
		Age:                p.Age,
		Sex:                p.Sex,
		HeightCm:           p.HeightCm,
		WeightKg:           p.WeightKg,
		ActivityLevel:      p.ActivityLevel,
		WeeklyWeightGoalKg: p.WeeklyWeightGoalKg,
	}
}

// GoalResolution is the outcome of ResolveGoal.
//
// Goal is what a display should show. Calculated is 0 unless Type is
// GoalTypeCalculated. Complete reports whether all five biometric inputs
// parsed, which lets advanced mode present an "incomplete" state.
type GoalResolution struct {
	Goal       int
	Type       model.GoalType
	Calculated int
	Complete   bool
	BMR        float64
	TDEE       float64
}

// ResolveGoal picks the active daily calorie goal for mode.
func ResolveGoal(mode model.Mode, manualGoalText string, b Biometrics) GoalResolution {
	manual, manualOK := ParseManualGoal(manualGoalText)
	fallback := DefaultGoal
	if manualOK {
		fallback = manual
	}

	if mode != model.ModeAdvanced {
		return GoalResolution{Goal: fallback, Type: model.GoalTypeManual}
	}

	in, ok := parseBiometrics(b)
	if !ok {
		return GoalResolution{Goal: fallback, Type: model.GoalTypeManual}
	}

	bmr := BMR(in.sex, in.weightKg, in.heightCm, in.age)
	tdee := bmr * ActivityFactor(in.activity)
	total := int(math.Round(tdee + WeeklyAdjustment(in.weeklyKg)))
	if total <= 0 {
		return GoalResolution{Goal: fallback, Type: model.GoalTypeManual, Complete: true, BMR: bmr, TDEE: tdee}
	}
	return GoalResolution{
		Goal:       total,
		Type:       model.GoalTypeCalculated,
		Calculated: total,
		Complete:   true,
		BMR:        bmr,
		TDEE:       tdee,
	}
}

// BMR is the sex-specific basal metabolic rate in kcal/day.
func BMR(sex model.Sex, weightKg, heightCm float64, age int) float64 {
	a := float64(age)
	if sex == model.SexFemale {
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*a
	}
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*a
}

// ActivityFactor maps an activity level to its TDEE multiplier; unknown
// levels get the sedentary factor.
func ActivityFactor(level model.ActivityLevel) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return activityFactors[model.ActivitySedentary]
}

// WeeklyAdjustment converts a weekly weight change into daily kcal.
func WeeklyAdjustment(weeklyKg float64) float64 {
	return weeklyKg * KcalPerKg / 7
}

// ParseManualGoal accepts a positive integer goal.
func ParseManualGoal(text string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParseWeeklyWeightGoal parses a weekly goal and checks range and step.
// Empty text is 0.
func ParseWeeklyWeightGoal(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid weekly weight goal %q", text)
	}
	if v < MinWeeklyWeightGoalKg || v > MaxWeeklyWeightGoalKg {
		return 0, fmt.Errorf("weekly weight goal must be between %.2f and %.2f kg", MinWeeklyWeightGoalKg, MaxWeeklyWeightGoalKg)
	}
	steps := v / WeeklyWeightGoalStepKg
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return 0, fmt.Errorf("weekly weight goal must be a multiple of %.2f kg", WeeklyWeightGoalStepKg)
	}
	return v, nil
}

// InputsFingerprint identifies the inputs a calculated goal depends on.
// Two profiles with equal fingerprints resolve to the same calculated goal.
func InputsFingerprint(b Biometrics) string {
	in, ok := parseBiometrics(b)
	if !ok {
		return ""
	}
	return fmt.Sprintf("v1|%d|%s|%g|%g|%s|%g", in.age, in.sex, in.heightCm, in.weightKg, in.activity, in.weeklyKg)
}

type parsedBiometrics struct {
	age      int
	sex      model.Sex
	heightCm float64
	weightKg float64
	activity model.ActivityLevel
	weeklyKg float64
}

func parseBiometrics(b Biometrics) (parsedBiometrics, bool) {
	var out parsedBiometrics
	age, err := strconv.Atoi(strings.TrimSpace(b.Age))
	if err != nil || age <= 0 {
		return out, false
	}
	sex, ok := model.ParseSex(b.Sex)
	if !ok {
		return out, false
	}
	height, ok := parsePositive(b.HeightCm)
	if !ok {
		return out, false
	}
	weight, ok := parsePositive(b.WeightKg)
	if !ok {
		return out, false
	}
	activity, ok := model.ParseActivityLevel(b.ActivityLevel)
	if !ok {
		return out, false
	}
	weekly, err := ParseWeeklyWeightGoal(b.WeeklyWeightGoalKg)
	if err != nil {
		weekly = 0
	}
	return parsedBiometrics{
		age:      age,
		sex:      sex,
		heightCm: height,
		weightKg: weight,
		activity: activity,
		weeklyKg: weekly,
	}, true
}

func parsePositive(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
