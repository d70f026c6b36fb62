package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessDrawQueueOrder(t *testing.T) {
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 30, 1), tcard(2, 31, 1), tcard(3, 32, 1), tcard(4, 33, 1)}
	s.Hands["b"] = []Card{tcard(5, 34, 1), tcard(6, 35, 1), tcard(7, 36, 1), tcard(8, 37, 1), tcard(9, 38, 1)}
	for i := 0; i < 5; i++ {
		s.Deck = append(s.Deck, tcard(100+i, 40, 1))
	}
	s.DrawQueue = []string{"a", "b"}

	s.processDrawQueue()

	// a drew first and took the first two deck cards, b took the third.
	assert.Len(t, s.Hands["a"], HandTarget)
	assert.Equal(t, 100, s.Hands["a"][4].ID)
	assert.Equal(t, 101, s.Hands["a"][5].ID)
	assert.Len(t, s.Hands["b"], HandTarget)
	assert.Equal(t, 102, s.Hands["b"][5].ID)

	assert.Len(t, s.Deck, 2)
	assert.Equal(t, 103, s.Deck[0].ID)
	assert.Nil(t, s.DrawQueue)
}

func TestProcessDrawQueueDeckExhaustion(t *testing.T) {
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 30, 1)}
	s.Deck = []Card{tcard(100, 40, 1), tcard(101, 41, 1)}
	s.DrawQueue = []string{"a", "b"}

	s.processDrawQueue()

	assert.Len(t, s.Hands["a"], 3)
	assert.Empty(t, s.Hands["b"])
	assert.Empty(t, s.Deck)
}

func TestProcessDrawQueueFullHandUntouched(t *testing.T) {
	s := playing("a", "b")
	full := make([]Card, HandTarget)
	for i := range full {
		full[i] = tcard(i+1, 30, 1)
	}
	s.Hands["a"] = full
	s.Deck = []Card{tcard(100, 40, 1)}
	s.DrawQueue = []string{"a"}

	s.processDrawQueue()

	assert.Len(t, s.Hands["a"], HandTarget)
	assert.Len(t, s.Deck, 1)
}
