package personas

import "github.com/BharatAdaptive/munimji-go/internal/domain/signals"

// regionalLanguages covers the Indic language subtags we treat as
// regional for trigger purposes.
var regionalLanguages = map[string]bool{
	"hi": true, "ta": true, "te": true, "kn": true, "ml": true,
	"mr": true, "bn": true, "gu": true, "pa": true, "or": true,
	"as": true, "ur": true,
}

// predicateTable is the closed set of trigger names the matcher knows.
// Catalog entries naming anything else resolve to alwaysFalse, so an
// unrecognized trigger simply never fires.
var predicateTable = map[string]Predicate{
	"morning": func(s *signals.Snapshot) bool { return s.Temporal.TimeOfDay == "morning" },
	"daytime": func(s *signals.Snapshot) bool { return s.Temporal.TimeOfDay == "day" },
	"evening": func(s *signals.Snapshot) bool { return s.Temporal.TimeOfDay == "evening" },
	"night":   func(s *signals.Snapshot) bool { return s.Temporal.TimeOfDay == "night" },
	"weekend": func(s *signals.Snapshot) bool { return s.Temporal.IsWeekend },
	"weekday": func(s *signals.Snapshot) bool { return !s.Temporal.IsWeekend },

	"hindi_or_regional": func(s *signals.Snapshot) bool {
		return regionalLanguages[s.Temporal.Language]
	},

	"low_end_device":  func(s *signals.Snapshot) bool { return s.Device.Class == "low_end" },
	"high_end_device": func(s *signals.Snapshot) bool { return s.Device.Class == "high_end" },
	"accessibility":   func(s *signals.Snapshot) bool { return s.Device.ScreenReader || s.Device.LargeFontSize },

	"wifi_connected": func(s *signals.Snapshot) bool { return s.Network.Type == "wifi" && s.Network.Reachable },
	"slow_network": func(s *signals.Snapshot) bool {
		return s.Network.Type == "2g" || s.Network.Type == "3g"
	},
	"save_data": func(s *signals.Snapshot) bool { return s.Network.SaveData },

	"low_battery":    func(s *signals.Snapshot) bool { return s.Battery.Level > 0 && s.Battery.Level < 0.2 },
	"charging":       func(s *signals.Snapshot) bool { return s.Battery.Charging },
	"power_save":     func(s *signals.Snapshot) bool { return s.Battery.PowerSave },
	"low_brightness": func(s *signals.Snapshot) bool { return s.Environment.Brightness > 0 && s.Environment.Brightness < 0.3 },
	"headphones_on":  func(s *signals.Snapshot) bool { return s.Environment.HeadphonesOn },

	"first_launch":  func(s *signals.Snapshot) bool { return s.AppUsage.IsFirstLaunch },
	"frequent_user": func(s *signals.Snapshot) bool { return s.AppUsage.SessionCount >= 10 },
	"low_storage":   func(s *signals.Snapshot) bool { return s.AppUsage.StorageFreeGB > 0 && s.AppUsage.StorageFreeGB < 2 },

	"metro_city": func(s *signals.Snapshot) bool { return s.Location.PermissionGranted && s.Location.CityTier == 1 },
	"small_town": func(s *signals.Snapshot) bool { return s.Location.PermissionGranted && s.Location.CityTier >= 2 },

	"on_the_move": func(s *signals.Snapshot) bool {
		return s.Activity.PermissionGranted && (s.Activity.Movement == "walking" || s.Activity.Movement == "in_vehicle")
	},
	"active_day": func(s *signals.Snapshot) bool { return s.Activity.PermissionGranted && s.Activity.StepCount >= 5000 },

	"busy_calendar": func(s *signals.Snapshot) bool { return s.Social.CalendarPermission && s.Social.CalendarBusy },

	"spiritual_interest": func(s *signals.Snapshot) bool { return s.Questionnaire.HasInterest("spiritual") },
	"music_interest":     func(s *signals.Snapshot) bool { return s.Questionnaire.HasInterest("music") },
	"cooking_interest":   func(s *signals.Snapshot) bool { return s.Questionnaire.HasInterest("cooking") },
	"learning_interest":  func(s *signals.Snapshot) bool { return s.Questionnaire.HasInterest("learning") },
	"student":            func(s *signals.Snapshot) bool { return s.Questionnaire != nil && s.Questionnaire.Occupation == "student" },
}

func alwaysFalse(*signals.Snapshot) bool { return false }

// resolvePredicate looks a trigger name up in the closed table. Unknown
// names map to the explicit always-false predicate at load time, never a
// runtime lookup failure.
func resolvePredicate(name string) Predicate {
	if p, ok := predicateTable[name]; ok {
		return p
	}
	return alwaysFalse
}

// KnownTrigger reports whether the name resolves to a real predicate.
func KnownTrigger(name string) bool {
	_, ok := predicateTable[name]
	return ok
}
