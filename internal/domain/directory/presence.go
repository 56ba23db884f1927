package directory

// Presence event names sent by clients.
const (
	PresenceEventOnline = "user-online"
	PresenceEventAway   = "user-away"
)

// PresenceSignal is a client presence announcement. Type is "click" for an
// explicit user action and anything else (usually "ping") for background
// re-announcements.
type PresenceSignal struct {
	Event    string   `json:"event"`
	Activity Activity `json:"activity"`
	Type     string   `json:"type"`
}

func (s PresenceSignal) isClick() bool {
	return s.Type == "click"
}

// NextActivity applies a presence signal to the stored state. Away always
// wins. A passive online announcement never clears AWAY; only a click does.
func NextActivity(current Activity, s PresenceSignal) Activity {
	if s.Event == PresenceEventAway || s.Activity == ActivityAway {
		return ActivityAway
	}

	next := s.Activity
	if next == "" {
		next = ActivityOnline
	}
	if !next.IsValid() {
		return current
	}

	if current == ActivityAway && !s.isClick() {
		return current
	}
	return next
}
