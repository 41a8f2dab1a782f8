// apps/go-server/internal/game/engine.go
//
// Pure state transitions for the P/Q game.
// Responsibilities:
//   - Start:   reset score, install round 1, status → playing.
//   - Select:  score a target or produce corrective feedback for a distractor.
//   - Advance: install the next round after round_complete.
//
// Notes:
//   - Apply never mutates its input; callers keep older snapshots intact.
//   - Invalid actions (wrong status, unknown or found item) are no-ops and
//     report Applied=false. Nothing here returns an error.
//   - Rounds are generated by the caller and passed in, keeping Apply free of
//     randomness.
package game

import "strings"

// PointsPerItem is the reward for each correctly selected target.
const PointsPerItem = 10

// ActionKind enumerates the transitions Apply understands.
type ActionKind string

const (
	ActionStart   ActionKind = "start"
	ActionSelect  ActionKind = "select"
	ActionAdvance ActionKind = "advance"
)

// Action is one input to the state machine.
// Start and Advance carry the freshly generated Round; Select carries ItemID.
type Action struct {
	Kind   ActionKind
	ItemID string
	Round  *Round
}

// Outcome reports what Apply did.
type Outcome struct {
	Applied       bool `json:"applied"`
	Correct       bool `json:"correct"`
	RoundComplete bool `json:"roundComplete"` // caller must schedule an Advance
}

// Apply returns the state after a, plus what happened.
func Apply(s State, a Action) (State, Outcome) {
	switch a.Kind {
	case ActionStart:
		if a.Round == nil {
			return s, Outcome{}
		}
		next := installRound(s, *a.Round)
		next.Score = 0
		next.Round = 1
		return next, Outcome{Applied: true}

	case ActionSelect:
		return applySelect(s, a.ItemID)

	case ActionAdvance:
		if s.Status != StatusRoundComplete || a.Round == nil {
			return s, Outcome{}
		}
		next := installRound(s, *a.Round)
		next.Round = s.Round + 1
		return next, Outcome{Applied: true}
	}
	return s, Outcome{}
}

func applySelect(s State, id string) (State, Outcome) {
	if s.Status != StatusPlaying {
		return s, Outcome{}
	}
	idx := -1
	for i := range s.Items {
		if s.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.Items[idx].IsFound {
		return s, Outcome{}
	}

	item := s.Items[idx]
	if !item.IsTarget {
		next := s.clone()
		next.Feedback = &Feedback{
			Kind:    FeedbackBad,
			Message: "不对哦！这是 " + strings.ToUpper(string(item.InitialLetter)),
			Letter:  item.InitialLetter,
		}
		return next, Outcome{Applied: true}
	}

	next := s.clone()
	next.Items[idx].IsFound = true
	next.Score += PointsPerItem
	next.Feedback = &Feedback{
		Kind:    FeedbackGood,
		Message: "太棒了！ " + item.Text,
		Letter:  item.InitialLetter,
	}
	out := Outcome{Applied: true, Correct: true}
	if next.RemainingTargets() == 0 {
		next.Status = StatusRoundComplete
		out.RoundComplete = true
	}
	return next, out
}

// installRound replaces the board wholesale and clears feedback.
func installRound(s State, r Round) State {
	next := s
	next.TargetLetter = r.TargetLetter
	next.Items = append([]Item(nil), r.Items...)
	next.Status = StatusPlaying
	next.Feedback = nil
	return next
}
