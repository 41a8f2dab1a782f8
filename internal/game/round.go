// apps/go-server/internal/game/round.go
//
// Round generation: a pure function of the round number, the syllable lists
// and a caller-supplied random source (so tests can pin a seed).
//
// Sizing:
//   - total   = BaseItems + min(round, MaxExtraItems)
//   - targets = floor(total * 2/5) + U{0..TargetJitter}, capped at total
//
// Items are built targets-first and then Fisher–Yates shuffled with the same
// source, so generation order leaks nothing into board position.

package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/words"
)

const (
	BaseItems     = 12
	MaxExtraItems = 5
	TargetJitter  = 2
	maxRotation   = 10
)

// Colors and Sizes are the decorative palettes (front-end class tokens).
var (
	Colors = []string{
		"text-red-500",
		"text-blue-500",
		"text-green-500",
		"text-purple-500",
		"text-orange-500",
		"text-pink-500",
		"text-teal-600",
		"text-indigo-600",
	}
	Sizes = []string{
		"text-3xl",
		"text-4xl",
		"text-5xl",
		"text-6xl",
	}
)

// Round is the output of GenerateRound.
type Round struct {
	Number       int
	TargetLetter Letter
	Items        []Item
}

// ItemCount is the board size for a round. Rounds below 1 count as 1.
func ItemCount(round int) int {
	if round < 1 {
		round = 1
	}
	return BaseItems + min(round, MaxExtraItems)
}

// MinTargets is the guaranteed number of targets (40%, rounded down) on a
// board of total items.
func MinTargets(total int) int {
	return total * 2 / 5
}

// GenerateRound builds a shuffled board for the given round.
func GenerateRound(round int, rng *rand.Rand, lists words.Lists) Round {
	if round < 1 {
		round = 1
	}
	target := LetterP
	if rng.IntN(2) == 1 {
		target = LetterQ
	}
	distractor := target.Other()

	total := ItemCount(round)
	targets := min(MinTargets(total)+rng.IntN(TargetJitter+1), total)

	targetList := lists.Group(string(target))
	distractorList := lists.Group(string(distractor))

	items := make([]Item, 0, total)
	for i := 0; i < total; i++ {
		isTarget := i < targets
		letter, src := distractor, distractorList
		if isTarget {
			letter, src = target, targetList
		}
		items = append(items, Item{
			ID:            fmt.Sprintf("item-%d-%d", round, i),
			Text:          src[rng.IntN(len(src))],
			IsTarget:      isTarget,
			InitialLetter: letter,
			Color:         Colors[rng.IntN(len(Colors))],
			Size:          Sizes[rng.IntN(len(Sizes))],
			Rotation:      rng.IntN(2*maxRotation) - maxRotation,
		})
	}

	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	return Round{Number: round, TargetLetter: target, Items: items}
}
