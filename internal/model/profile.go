package model

import "strings"

type Mode string

const (
	ModeSimple   Mode = "simple"
	ModeAdvanced Mode = "advanced"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityVery      ActivityLevel = "very"
)

type GoalType string

const (
	GoalTypeManual     GoalType = "manual"
	GoalTypeCalculated GoalType = "calculated"
)

// Preference keys. Values are persisted as plain strings and must stay stable
// across releases.
const (
	PrefProfileMode          = "profile_mode"
	PrefManualGoal           = "manual_goal"
	PrefAge                  = "age"
	PrefSex                  = "sex"
	PrefHeightCm             = "height_cm"
	PrefWeightKg             = "weight_kg"
	PrefActivityLevel        = "activity_level"
	PrefWeeklyWeightGoalKg   = "weekly_weight_goal_kg"
	PrefCalculatedGoal       = "calculated_goal"
	PrefActiveGoalType       = "active_goal_type"
	PrefProfileVersion       = "profile_version"
	PrefCalculatedGoalInputs = "calculated_goal_inputs"
	PrefLocale               = "locale"
)

// ProfileKeys lists the keys written together when a profile is saved.
var ProfileKeys = []string{
	PrefProfileMode,
	PrefManualGoal,
	PrefAge,
	PrefSex,
	PrefHeightCm,
	PrefWeightKg,
	PrefActivityLevel,
	PrefWeeklyWeightGoalKg,
	PrefCalculatedGoal,
	PrefActiveGoalType,
	PrefCalculatedGoalInputs,
	PrefProfileVersion,
}

// Profile is the goal configuration. Biometric inputs are kept as entered so
// that malformed text reads back as missing instead of failing the load.
type Profile struct {
	Version            int
	Mode               Mode
	ManualGoal         string
	Age                string
	Sex                string
	HeightCm           string
	WeightKg           string
	ActivityLevel      string
	WeeklyWeightGoalKg string
	CalculatedGoal     int
	// CalculatedGoalInputs fingerprints the inputs CalculatedGoal was derived from.
	CalculatedGoalInputs string
	ActiveGoalType       GoalType
}

func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSimple:
		return ModeSimple, true
	case ModeAdvanced:
		return ModeAdvanced, true
	}
	return "", false
}

func ParseSex(s string) (Sex, bool) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale, true
	case SexFemale:
		return SexFemale, true
	}
	return "", false
}

func ParseActivityLevel(s string) (ActivityLevel, bool) {
	switch ActivityLevel(strings.ToLower(strings.TrimSpace(s))) {
	case ActivitySedentary:
		return ActivitySedentary, true
	case ActivityLight:
		return ActivityLight, true
	case ActivityModerate:
		return ActivityModerate, true
	case ActivityVery:
		return ActivityVery, true
	}
	return "", false
}
