package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/dbx"
	"github.com/saadjs/caltrack/internal/logging"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/nutrition"
	"github.com/saadjs/caltrack/internal/repositories/preferences"
)

// LoadProfile reads the profile keys. Unset or unreadable values load as
// their zero state: simple mode, no calculated goal, manual goal type.
func LoadProfile(ctx context.Context, prefs preferences.Repository) (model.Profile, error) {
	all, err := prefs.List(ctx)
	if err != nil {
		return model.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	p := model.Profile{
		Mode:                 model.ModeSimple,
		ManualGoal:           all[model.PrefManualGoal],
		Age:                  all[model.PrefAge],
		Sex:                  all[model.PrefSex],
		HeightCm:             all[model.PrefHeightCm],
		WeightKg:             all[model.PrefWeightKg],
		ActivityLevel:        all[model.PrefActivityLevel],
		WeeklyWeightGoalKg:   all[model.PrefWeeklyWeightGoalKg],
		CalculatedGoalInputs: all[model.PrefCalculatedGoalInputs],
		ActiveGoalType:       model.GoalTypeManual,
	}
	if mode, ok := model.ParseMode(all[model.PrefProfileMode]); ok {
		p.Mode = mode
	}
	if v, err := strconv.Atoi(all[model.PrefCalculatedGoal]); err == nil && v > 0 {
		p.CalculatedGoal = v
	}
	if model.GoalType(all[model.PrefActiveGoalType]) == model.GoalTypeCalculated {
		p.ActiveGoalType = model.GoalTypeCalculated
	}
	if v, err := strconv.Atoi(all[model.PrefProfileVersion]); err == nil && v > 0 {
		p.Version = v
	}
	return p, nil
}

// SaveProfile writes every profile key in one transaction and bumps
// profile_version. Empty fields are removed from the store.
func SaveProfile(ctx context.Context, db *sql.DB, p model.Profile) (model.Profile, error) {
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		p, err = saveProfileTx(ctx, tx, p)
		return err
	})
	if err != nil {
		return model.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// saveProfileTx is SaveProfile against an open transaction.
func saveProfileTx(ctx context.Context, tx dbx.DBTX, p model.Profile) (model.Profile, error) {
	prefs := prefRepo(tx)
	current, _, err := prefs.Get(ctx, model.PrefProfileVersion)
	if err != nil {
		return model.Profile{}, err
	}
	version := 0
	if current = strings.TrimSpace(current); current != "" {
		if version, err = strconv.Atoi(current); err != nil || version < 0 {
			return model.Profile{}, fmt.Errorf("parse profile version %q: invalid value", current)
		}
	}
	p.Version = version + 1

	calculated := ""
	if p.CalculatedGoal > 0 {
		calculated = strconv.Itoa(p.CalculatedGoal)
	}
	values := map[string]string{
		model.PrefProfileMode:          string(p.Mode),
		model.PrefManualGoal:           strings.TrimSpace(p.ManualGoal),
		model.PrefAge:                  strings.TrimSpace(p.Age),
		model.PrefSex:                  strings.TrimSpace(p.Sex),
		model.PrefHeightCm:             strings.TrimSpace(p.HeightCm),
		model.PrefWeightKg:             strings.TrimSpace(p.WeightKg),
		model.PrefActivityLevel:        strings.TrimSpace(p.ActivityLevel),
		model.PrefWeeklyWeightGoalKg:   strings.TrimSpace(p.WeeklyWeightGoalKg),
		model.PrefCalculatedGoal:       calculated,
		model.PrefActiveGoalType:       string(p.ActiveGoalType),
		model.PrefCalculatedGoalInputs: p.CalculatedGoalInputs,
		model.PrefProfileVersion:       strconv.Itoa(p.Version),
	}
	for _, key := range model.ProfileKeys {
		if err := prefs.Set(ctx, key, values[key]); err != nil {
			return model.Profile{}, err
		}
	}
	return p, nil
}

// RecomputeGoal refreshes the derived fields of p. The calculated goal is
// cached whenever the biometric inputs allow one, in either mode, so that
// switching back to advanced mode finds it. ActiveGoalType is calculated only
// in advanced mode with a usable calculated goal.
func RecomputeGoal(p model.Profile) model.Profile {
	b := nutrition.BiometricsFromProfile(p)
	adv := nutrition.ResolveGoal(model.ModeAdvanced, p.ManualGoal, b)
	if adv.Type == model.GoalTypeCalculated {
		p.CalculatedGoal = adv.Calculated
		p.CalculatedGoalInputs = nutrition.InputsFingerprint(b)
	} else {
		p.CalculatedGoal = 0
		p.CalculatedGoalInputs = ""
	}
	p.ActiveGoalType = model.GoalTypeManual
	if p.Mode == model.ModeAdvanced && p.CalculatedGoal > 0 {
		p.ActiveGoalType = model.GoalTypeCalculated
	}
	return p
}

func derivedEqual(a, b model.Profile) bool {
	return a.CalculatedGoal == b.CalculatedGoal &&
		a.CalculatedGoalInputs == b.CalculatedGoalInputs &&
		a.ActiveGoalType == b.ActiveGoalType
}

// GoalStatus is the resolved goal together with the profile it came from.
type GoalStatus struct {
	Profile    model.Profile
	Resolution nutrition.GoalResolution
	// Rewritten reports that a stale cached goal was corrected on read.
	Rewritten bool
}

// CurrentGoal resolves the active goal. A cached calculated goal that no
// longer matches its inputs is rewritten before returning.
func CurrentGoal(ctx context.Context, db *sql.DB, log logging.Logger) (GoalStatus, error) {
	log = loggerOr(log)
	p, err := LoadProfile(ctx, prefRepo(db))
	if err != nil {
		return GoalStatus{}, err
	}
	status := GoalStatus{Profile: p}
	if fresh := RecomputeGoal(p); !derivedEqual(p, fresh) {
		log.Warn(ctx, "rewriting stale calculated goal",
			"cached_goal", p.CalculatedGoal, "goal", fresh.CalculatedGoal,
			"cached_type", p.ActiveGoalType, "type", fresh.ActiveGoalType)
		saved, err := SaveProfile(ctx, db, fresh)
		if err != nil {
			return GoalStatus{}, err
		}
		status.Profile = saved
		status.Rewritten = true
	}
	status.Resolution = nutrition.ResolveGoal(status.Profile.Mode, status.Profile.ManualGoal, nutrition.BiometricsFromProfile(status.Profile))
	return status, nil
}

// ProfileUpdate carries profile edits. Nil fields are left unchanged and an
// empty string clears the field.
type ProfileUpdate struct {
	Mode               *string
	ManualGoal         *string
	Age                *string
	Sex                *string
	HeightCm           *string
	WeightKg           *string
	ActivityLevel      *string
	WeeklyWeightGoalKg *string
}

func (u ProfileUpdate) empty() bool {
	return u.Mode == nil && u.ManualGoal == nil && u.Age == nil && u.Sex == nil &&
		u.HeightCm == nil && u.WeightKg == nil && u.ActivityLevel == nil && u.WeeklyWeightGoalKg == nil
}

// UpdateProfile validates and applies u, recomputes the goal and persists the
// profile atomically.
func UpdateProfile(ctx context.Context, db *sql.DB, log logging.Logger, u ProfileUpdate) (GoalStatus, error) {
	log = loggerOr(log)
	if u.empty() {
		return GoalStatus{}, fmt.Errorf("%w: no profile fields to update", common.ErrInvalidInput)
	}
	if err := validateProfileUpdate(u); err != nil {
		return GoalStatus{}, err
	}

	var saved model.Profile
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		p, err := LoadProfile(ctx, prefRepo(tx))
		if err != nil {
			return err
		}
		applyProfileUpdate(&p, u)
		saved, err = saveProfileTx(ctx, tx, RecomputeGoal(p))
		return err
	})
	if err != nil {
		return GoalStatus{}, fmt.Errorf("update profile: %w", err)
	}
	res := nutrition.ResolveGoal(saved.Mode, saved.ManualGoal, nutrition.BiometricsFromProfile(saved))
	log.Info(ctx, "profile updated", "version", saved.Version, "mode", saved.Mode, "goal", res.Goal, "goal_type", res.Type)
	return GoalStatus{Profile: saved, Resolution: res}, nil
}

// applyProfileUpdate copies the set fields of a validated u onto p.
func applyProfileUpdate(p *model.Profile, u ProfileUpdate) {
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.ToLower(strings.TrimSpace(*src))
		}
	}
	if u.Mode != nil {
		p.Mode, _ = model.ParseMode(*u.Mode)
	}
	apply(&p.ManualGoal, u.ManualGoal)
	apply(&p.Age, u.Age)
	apply(&p.Sex, u.Sex)
	apply(&p.HeightCm, u.HeightCm)
	apply(&p.WeightKg, u.WeightKg)
	apply(&p.ActivityLevel, u.ActivityLevel)
	apply(&p.WeeklyWeightGoalKg, u.WeeklyWeightGoalKg)
}

// profileUpdateFor maps a single profile preference onto a ProfileUpdate.
func profileUpdateFor(key, value string) (ProfileUpdate, bool) {
	var u ProfileUpdate
	switch key {
	case model.PrefProfileMode:
		u.Mode = &value
	case model.PrefManualGoal:
		u.ManualGoal = &value
	case model.PrefAge:
		u.Age = &value
	case model.PrefSex:
		u.Sex = &value
	case model.PrefHeightCm:
		u.HeightCm = &value
	case model.PrefWeightKg:
		u.WeightKg = &value
	case model.PrefActivityLevel:
		u.ActivityLevel = &value
	case model.PrefWeeklyWeightGoalKg:
		u.WeeklyWeightGoalKg = &value
	default:
		return ProfileUpdate{}, false
	}
	return u, true
}

// SetMode switches between simple and advanced mode. Values of the other mode
// are kept.
func SetMode(ctx context.Context, db *sql.DB, log logging.Logger, mode string) (GoalStatus, error) {
	return UpdateProfile(ctx, db, log, ProfileUpdate{Mode: &mode})
}

func validateProfileUpdate(u ProfileUpdate) error {
	set := func(v *string) bool { return v != nil && strings.TrimSpace(*v) != "" }

	if u.Mode != nil {
		if _, ok := model.ParseMode(*u.Mode); !ok {
			return fmt.Errorf("%w: mode must be simple or advanced", common.ErrInvalidInput)
		}
	}
	if set(u.ManualGoal) {
		if _, ok := nutrition.ParseManualGoal(*u.ManualGoal); !ok {
			return fmt.Errorf("%w: manual goal must be a positive whole number", common.ErrInvalidInput)
		}
	}
	if set(u.Age) {
		age, err := strconv.Atoi(strings.TrimSpace(*u.Age))
		if err != nil || age <= 0 {
			return fmt.Errorf("%w: age must be a positive whole number", common.ErrInvalidInput)
		}
	}
	if set(u.Sex) {
		if _, ok := model.ParseSex(*u.Sex); !ok {
			return fmt.Errorf("%w: sex must be male or female", common.ErrInvalidInput)
		}
	}
	for name, v := range map[string]*string{"height": u.HeightCm, "weight": u.WeightKg} {
		if !set(v) {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", common.ErrInvalidInput, name)
		}
		if err := validatePositive(name, f); err != nil {
			return err
		}
	}
	if set(u.ActivityLevel) {
		if _, ok := model.ParseActivityLevel(*u.ActivityLevel); !ok {
			return fmt.Errorf("%w: activity level must be sedentary, light, moderate or very", common.ErrInvalidInput)
		}
	}
	if u.WeeklyWeightGoalKg != nil {
		if _, err := nutrition.ParseWeeklyWeightGoal(*u.WeeklyWeightGoalKg); err != nil {
			return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
	}
	return nil
}
