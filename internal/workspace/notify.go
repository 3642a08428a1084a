package workspace

import "time"

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification messages
const (
	MsgCopied     = "Copied to clipboard!"
	MsgCopyFailed = "Failed to copy to clipboard"
)

type Notification struct {
	ID        uint64            `json:"id"`
	Message   string            `json:"message"`
	Level     NotificationLevel `json:"level"`
	ShownAt   time.Time         `json:"shown_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Notifier is a single notification slot. A new notification replaces the
// visible one; an expiry only hides the notification it belongs to.
type Notifier struct {
	current *Notification
	seq     uint64
	now     func() time.Time
}

func NewNotifier() *Notifier {
	return &Notifier{now: time.Now}
}

func (n *Notifier) Show(message string, level NotificationLevel, d time.Duration) Notification {
	n.seq++
	shown := n.now()
	note := Notification{
		ID:        n.seq,
		Message:   message,
		Level:     level,
		ShownAt:   shown,
		ExpiresAt: shown.Add(d),
	}
	n.current = &note
	return note
}

// Expire hides notification id if it is still the visible one.
func (n *Notifier) Expire(id uint64) bool {
	if n.current == nil || n.current.ID != id {
		return false
	}
	n.current = nil
	return true
}

func (n *Notifier) Current() *Notification {
	if n.current == nil {
		return nil
	}
	c := *n.current
	return &c
}
