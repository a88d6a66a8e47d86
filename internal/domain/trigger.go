package domain

// Trigger is the cause of a re-evaluation pass. Triggers carry no payload and
// never influence decision logic; they exist for logging and telemetry.
type Trigger string

const (
	TriggerManual          Trigger = "manual"
	TriggerBoot            Trigger = "boot"
	TriggerCalendarChanged Trigger = "calendar_changed"
	TriggerPeriodicAlarm   Trigger = "periodic_alarm"
	TriggerOverrideChanged Trigger = "override_changed"
	TriggerSettingsChanged Trigger = "settings_changed"
)

func (t Trigger) String() string {
	return string(t)
}
