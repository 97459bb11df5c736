package event

import "fmt"

// Kind tells the presentation layer how to style an event.
type Kind string

const (
	KindNarration Kind = "narration" // location descriptions, story text
	KindInfo      Kind = "info"      // views: inventory, journal, help
	KindSuccess   Kind = "success"   // pickups, heals, victories
	KindWarning   Kind = "warning"   // educational notes, spawns, low health
	KindCombat    Kind = "combat"    // attacks and retaliation
	KindRejected  Kind = "rejected"  // player-facing errors; no state changed
	KindSystem    Kind = "system"    // game over, restarts, saves
)

// Event is one display-worthy line produced by a turn.
type Event struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Log is an ordered event buffer built up during a single turn.
type Log []Event

func (l *Log) Add(kind Kind, text string) {
	*l = append(*l, Event{Kind: kind, Text: text})
}

func (l *Log) Addf(kind Kind, format string, args ...any) {
	l.Add(kind, fmt.Sprintf(format, args...))
}

// Texts returns just the text of every event, in order.
func (l Log) Texts() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Text
	}
	return out
}
