package session

import (
	"time"

	"github.com/rpggio/brewlog/internal/domain/pour"
)

// DefaultID names the session used when a caller doesn't identify one.
const DefaultID = "default"

// State is the presentation state of one session: which bean the user is
// brewing and the pour schedule they are drafting for the next record.
type State struct {
	SessionID      string        `json:"session_id"`
	SelectedBeanID *int64        `json:"selected_bean_id,omitempty"`
	Draft          pour.Schedule `json:"draft"`
	LastActivity   time.Time     `json:"last_activity"`
}

func (s State) clone() State {
	out := s
	if s.SelectedBeanID != nil {
		id := *s.SelectedBeanID
		out.SelectedBeanID = &id
	}
	out.Draft = append(pour.Schedule{}, s.Draft...)
	return out
}
