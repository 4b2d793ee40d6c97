package gig

// Action names a history event. The set is open-ended; only the gig actions
// take part in change detection.
type Action string

const (
	ActionAdded    Action = "Added"
	ActionEdited   Action = "Edited"
	ActionDeleted  Action = "Deleted"
	ActionVisited  Action = "Visited"
	ActionLoggedIn Action = "Logged in"
)

// IsGigAction reports whether the action describes a change to a gig.
func (a Action) IsGigAction() bool {
	switch a {
	case ActionAdded, ActionEdited, ActionDeleted:
		return true
	default:
		return false
	}
}

// HistoryEntry is an append-only audit record. Timestamps are ISO-8601
// strings and entries arrive newest first from the gateway.
type HistoryEntry struct {
	Action    Action `json:"action"`
	Band      string `json:"band"`
	User      string `json:"user"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
}

// Session is the signed-in identity. Password doubles as the shared secret
// sent with every gateway request; Name is free text.
type Session struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Valid reports whether the session can authenticate requests.
func (s *Session) Valid() bool {
	return s != nil && s.Password != ""
}

// DefaultWatermark is the last-seen value before history was ever opened.
const DefaultWatermark = "0"
