package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fixedRound builds a small board: two q targets and one p distractor.
func fixedRound() Round {
	return Round{
		Number:       1,
		TargetLetter: LetterQ,
		Items: []Item{
			{ID: "a", Text: "qi", IsTarget: true, InitialLetter: LetterQ},
			{ID: "b", Text: "pa", IsTarget: false, InitialLetter: LetterP},
			{ID: "c", Text: "qu", IsTarget: true, InitialLetter: LetterQ},
		},
	}
}

func started(t *testing.T) State {
	t.Helper()
	r := fixedRound()
	s, out := Apply(NewState(), Action{Kind: ActionStart, Round: &r})
	require.True(t, out.Applied)
	return s
}

func TestApply_Start(t *testing.T) {
	prev := NewState()
	prev.Score = 50
	prev.Round = 4
	r := fixedRound()

	s, out := Apply(prev, Action{Kind: ActionStart, Round: &r})
	assert.True(t, out.Applied)
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, LetterQ, s.TargetLetter)
	assert.Len(t, s.Items, 3)
	assert.Nil(t, s.Feedback)

	_, out = Apply(prev, Action{Kind: ActionStart})
	assert.False(t, out.Applied, "start without a round is ignored")
}

func TestApply_SelectTarget(t *testing.T) {
	s := started(t)

	next, out := Apply(s, Action{Kind: ActionSelect, ItemID: "a"})
	assert.Equal(t, Outcome{Applied: true, Correct: true}, out)
	assert.Equal(t, PointsPerItem, next.Score)
	assert.True(t, next.Items[0].IsFound)
	require.NotNil(t, next.Feedback)
	assert.Equal(t, FeedbackGood, next.Feedback.Kind)
	assert.Contains(t, next.Feedback.Message, "qi")

	// input untouched
	assert.False(t, s.Items[0].IsFound)
	assert.Equal(t, 0, s.Score)

	again, out := Apply(next, Action{Kind: ActionSelect, ItemID: "a"})
	assert.False(t, out.Applied)
	assert.Equal(t, next, again)
}

func TestApply_SelectDistractor(t *testing.T) {
	s := started(t)

	next, out := Apply(s, Action{Kind: ActionSelect, ItemID: "b"})
	assert.Equal(t, Outcome{Applied: true}, out)
	assert.Equal(t, 0, next.Score)
	assert.Equal(t, s.Items, next.Items)
	assert.Equal(t, StatusPlaying, next.Status)
	require.NotNil(t, next.Feedback)
	assert.Equal(t, FeedbackBad, next.Feedback.Kind)
	assert.Equal(t, LetterP, next.Feedback.Letter)
	assert.Contains(t, next.Feedback.Message, "P")
}

func TestApply_SelectUnknownOrNotPlaying(t *testing.T) {
	s := started(t)
	_, out := Apply(s, Action{Kind: ActionSelect, ItemID: "nope"})
	assert.False(t, out.Applied)

	intro := NewState()
	_, out = Apply(intro, Action{Kind: ActionSelect, ItemID: "a"})
	assert.False(t, out.Applied)
}

func TestApply_RoundCompleteAndAdvance(t *testing.T) {
	s := started(t)
	s, _ = Apply(s, Action{Kind: ActionSelect, ItemID: "c"})
	s, out := Apply(s, Action{Kind: ActionSelect, ItemID: "a"})
	assert.True(t, out.RoundComplete)
	assert.Equal(t, StatusRoundComplete, s.Status)
	assert.Equal(t, 2*PointsPerItem, s.Score)

	// selections are inert while the round is complete
	frozen, out := Apply(s, Action{Kind: ActionSelect, ItemID: "b"})
	assert.False(t, out.Applied)
	assert.Equal(t, s, frozen)

	next := GenerateRound(2, seeded(5), testLists)
	adv, out := Apply(s, Action{Kind: ActionAdvance, Round: &next})
	assert.True(t, out.Applied)
	assert.Equal(t, 2, adv.Round)
	assert.Equal(t, StatusPlaying, adv.Status)
	assert.Nil(t, adv.Feedback)
	assert.Equal(t, 2*PointsPerItem, adv.Score)
	assert.Equal(t, next.TargetLetter, adv.TargetLetter)
	assert.Len(t, adv.Items, ItemCount(2))

	// a second advance is rejected: the round is already playing
	_, out = Apply(adv, Action{Kind: ActionAdvance, Round: &next})
	assert.False(t, out.Applied)
}

func TestProperty_SelectionSequences(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		r := GenerateRound(1, seeded(seed), testLists)
		s, _ := Apply(NewState(), Action{Kind: ActionStart, Round: &r})

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			idx := rapid.IntRange(0, len(r.Items)-1).Draw(t, "idx")
			id := r.Items[idx].ID
			prev := s
			var out Outcome
			s, out = Apply(s, Action{Kind: ActionSelect, ItemID: id})

			if prev.Status == StatusRoundComplete {
				if out.Applied {
					t.Fatalf("selection applied while round complete")
				}
				continue
			}
			if s.Score < prev.Score {
				t.Fatalf("score decreased")
			}
			target := prev.Items[idx].IsTarget
			wasFound := prev.Items[idx].IsFound
			switch {
			case !target || wasFound:
				if s.Score != prev.Score {
					t.Fatalf("score changed on non-scoring selection")
				}
				for j := range s.Items {
					if s.Items[j].IsFound != prev.Items[j].IsFound {
						t.Fatalf("found flags changed on non-scoring selection")
					}
				}
			default:
				if s.Score != prev.Score+PointsPerItem || !s.Items[idx].IsFound {
					t.Fatalf("target selection not scored")
				}
			}
			if (s.RemainingTargets() == 0) != (s.Status == StatusRoundComplete) {
				t.Fatalf("status %s with %d targets left", s.Status, s.RemainingTargets())
			}
		}
		found := 0
		for _, it := range s.Items {
			if it.IsFound {
				found++
			}
		}
		if s.Score != PointsPerItem*found {
			t.Fatalf("score %d != 10 × %d found", s.Score, found)
		}
	})
}
