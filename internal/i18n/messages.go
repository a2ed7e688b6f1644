package i18n

// Message keys used by the CLI and TUI.
const (
	MsgDate             = "Date: %s"
	MsgGoal             = "Goal: %d kcal (%s)"
	MsgConsumed         = "Consumed: %d kcal"
	MsgRemaining        = "Remaining: %d kcal"
	MsgOver             = "Over by: %d kcal"
	MsgProgress         = "Progress: %.0f%% (%s)"
	MsgNutrients        = "Protein %.1f g, Carbs %.1f g, Fat %.1f g"
	MsgNoEntries        = "No entries for %s"
	MsgIncompleteInputs = "Profile incomplete, using manual goal"
	MsgHistoryDay       = "%s  %d kcal  (%d entries)"
	MsgNoHistory        = "No history yet"
	MsgEntryAdded       = "Added %s: %d kcal"
	MsgEntryDeleted     = "Deleted entry %d"
	MsgBMR              = "BMR: %.0f kcal, TDEE: %.0f kcal"
	MsgMode             = "Mode: %s"

	MsgBandUnder   = "under"
	MsgBandWarning = "warning"
	MsgBandDanger  = "danger"
	MsgBandNeutral = "neutral"
	MsgManual      = "manual"
	MsgCalculated  = "calculated"
	MsgSimple      = "simple"
	MsgAdvanced    = "advanced"
)

var german = map[string]string{
	MsgDate:             "Datum: %s",
	MsgGoal:             "Ziel: %d kcal (%s)",
	MsgConsumed:         "Verbraucht: %d kcal",
	MsgRemaining:        "Verbleibend: %d kcal",
	MsgOver:             "Überschritten um: %d kcal",
	MsgProgress:         "Fortschritt: %.0f%% (%s)",
	MsgNutrients:        "Eiweiß %.1f g, Kohlenhydrate %.1f g, Fett %.1f g",
	MsgNoEntries:        "Keine Einträge für %s",
	MsgIncompleteInputs: "Profil unvollständig, manuelles Ziel wird verwendet",
	MsgHistoryDay:       "%s  %d kcal  (%d Einträge)",
	MsgNoHistory:        "Noch kein Verlauf",
	MsgEntryAdded:       "%s hinzugefügt: %d kcal",
	MsgEntryDeleted:     "Eintrag %d gelöscht",
	MsgBMR:              "Grundumsatz: %.0f kcal, Gesamtumsatz: %.0f kcal",
	MsgMode:             "Modus: %s",

	MsgBandUnder:   "darunter",
	MsgBandWarning: "Warnung",
	MsgBandDanger:  "zu viel",
	MsgBandNeutral: "neutral",
	MsgManual:      "manuell",
	MsgCalculated:  "berechnet",
	MsgSimple:      "einfach",
	MsgAdvanced:    "erweitert",
}
