// apps/go-server/internal/game/types.go
//
// Core type definitions for the P/Q matching game.
// Defines:
//   - Letter: the two syllable groups ("p", "q").
//   - Status: intro → playing → round_complete → playing …
//   - Item:   one bubble on the board.
//   - State:  the full game state owned by a Game.

package game

// Letter identifies a syllable group by its initial.
type Letter string

const (
	LetterP Letter = "p"
	LetterQ Letter = "q"
)

// Other returns the opposite group.
func (l Letter) Other() Letter {
	if l == LetterP {
		return LetterQ
	}
	return LetterP
}

// Status is the coarse game phase.
type Status string

const (
	StatusIntro         Status = "intro"
	StatusPlaying       Status = "playing"
	StatusRoundComplete Status = "round_complete"
)

// FeedbackKind tells the front end how to colour a feedback message.
type FeedbackKind string

const (
	FeedbackGood FeedbackKind = "good"
	FeedbackBad  FeedbackKind = "bad"
)

// Feedback is the transient message shown after a selection.
type Feedback struct {
	Kind    FeedbackKind `json:"kind"`
	Message string       `json:"message"`
	Letter  Letter       `json:"letter"` // initial of the selected item
}

// Item is one bubble. Color, Size and Rotation are decorative only.
type Item struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	IsTarget      bool   `json:"isTarget"`
	InitialLetter Letter `json:"initialLetter"`
	Color         string `json:"color"`
	Size          string `json:"size"`
	Rotation      int    `json:"rotation"`
	IsFound       bool   `json:"isFound"`
}

// State is the whole game state. Apply treats it as a value; Items is
// copied before any mutation so earlier snapshots never change.
type State struct {
	Score        int       `json:"score"`
	Round        int       `json:"round"`
	TargetLetter Letter    `json:"targetLetter"`
	Items        []Item    `json:"items"`
	Status       Status    `json:"status"`
	Feedback     *Feedback `json:"feedback,omitempty"`
}

// NewState returns the state of a game that has not been started.
func NewState() State {
	return State{Round: 1, TargetLetter: LetterQ, Items: []Item{}, Status: StatusIntro}
}

// RemainingTargets counts target items not yet found.
func (s State) RemainingTargets() int {
	n := 0
	for _, it := range s.Items {
		if it.IsTarget && !it.IsFound {
			n++
		}
	}
	return n
}

// clone returns a copy of s whose Items slice can be mutated freely.
func (s State) clone() State {
	out := s
	out.Items = append([]Item(nil), s.Items...)
	if s.Feedback != nil {
		fb := *s.Feedback
		out.Feedback = &fb
	}
	return out
}
