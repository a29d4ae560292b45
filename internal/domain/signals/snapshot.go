// Package signals defines the raw device and context signal snapshot
// submitted by the mobile SDK on each personalization request.
package signals

// Snapshot is the complete set of signals for one request. It is built
// once from the inbound payload and never mutated by the kernel.
type Snapshot struct {
	Device        DeviceSignals        `json:"device"`
	Network       NetworkSignals       `json:"network"`
	Battery       BatterySignals       `json:"battery"`
	Temporal      TemporalSignals      `json:"temporal"`
	Environment   EnvironmentSignals   `json:"environment"`
	AppUsage      AppUsageSignals      `json:"appUsage"`
	Location      LocationSignals      `json:"location"`
	Activity      ActivitySignals      `json:"activity"`
	Social        SocialSignals        `json:"social"`
	Questionnaire *QuestionnaireAnswers `json:"questionnaire,omitempty"`
}

// DeviceSignals describes the handset itself.
type DeviceSignals struct {
	Class         string `json:"class"` // "low_end" or "high_end"
	MemoryTier    string `json:"memoryTier"`
	ScreenReader  bool   `json:"screenReader"`
	LargeFontSize bool   `json:"largeFontSize"`
}

// NetworkSignals describes current connectivity.
type NetworkSignals struct {
	Type      string `json:"type"` // "wifi", "4g", "3g", "2g"
	Reachable bool   `json:"reachable"`
	SaveData  bool   `json:"saveData"`
}

// BatterySignals describes power state.
type BatterySignals struct {
	Level     float64 `json:"level"` // 0.0 - 1.0
	Charging  bool    `json:"charging"`
	PowerSave bool    `json:"powerSave"`
}

// TemporalSignals describes the time context on the device.
type TemporalSignals struct {
	TimeOfDay string `json:"timeOfDay"` // "morning", "day", "evening", "night"
	IsWeekend bool   `json:"isWeekend"`
	Language  string `json:"language"` // BCP-47 primary subtag, e.g. "hi", "ta", "en"
}

// EnvironmentSignals describes ambient conditions.
type EnvironmentSignals struct {
	Brightness    float64 `json:"brightness"` // 0.0 - 1.0
	Volume        float64 `json:"volume"`     // 0.0 - 1.0
	HeadphonesOn  bool    `json:"headphonesOn"`
}

// AppUsageSignals describes how the app has been used on this install.
type AppUsageSignals struct {
	SessionCount   int     `json:"sessionCount"`
	StorageFreeGB  float64 `json:"storageFreeGb"`
	IsFirstLaunch  bool    `json:"isFirstLaunch"`
}

// LocationSignals describes coarse location context, permission permitting.
type LocationSignals struct {
	PermissionGranted bool   `json:"permissionGranted"`
	City              string `json:"city"`
	CityTier          int    `json:"cityTier"` // 1, 2, 3; 0 when unknown
}

// ActivitySignals describes physical activity context.
type ActivitySignals struct {
	PermissionGranted bool   `json:"permissionGranted"`
	StepCount         int    `json:"stepCount"`
	Movement          string `json:"movement"` // "stationary", "walking", "in_vehicle"
}

// SocialSignals describes calendar and contacts context.
type SocialSignals struct {
	CalendarPermission bool `json:"calendarPermission"`
	ContactsPermission bool `json:"contactsPermission"`
	CalendarBusy       bool `json:"calendarBusy"`
}

// QuestionnaireAnswers holds the optional structured onboarding answers.
type QuestionnaireAnswers struct {
	PrimaryUse string   `json:"primaryUse"`
	Interests  []string `json:"interests"`
	Occupation string   `json:"occupation"`
}

// HasInterest reports whether the questionnaire lists the given interest.
func (q *QuestionnaireAnswers) HasInterest(interest string) bool {
	if q == nil {
		return false
	}
	for _, i := range q.Interests {
		if i == interest {
			return true
		}
	}
	return false
}
