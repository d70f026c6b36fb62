package game

import (
	"math/rand"

	"github.com/durakfree/durak-server-go/internal/game/rules"
)

// ShuffleFunc produces a permutation of the card catalog. It must be
// deterministic for a given seed so games can be replayed in tests.
type ShuffleFunc func(seed int64, cards []Card) []Card

// SeededShuffle is the default shuffle: a Fisher-Yates permutation
// driven by a seeded source. The input slice is not mutated.
func SeededShuffle(seed int64, cards []Card) []Card {
	out := append([]Card(nil), cards...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// deal distributes HandTarget cards to each player in join order from
// the front of the deck.
func (s *GameState) deal() {
	for _, playerID := range s.PlayerOrder {
		hand := make([]Card, 0, HandTarget)
		for len(hand) < HandTarget && len(s.Deck) > 0 {
			hand = append(hand, s.Deck[0])
			s.Deck = s.Deck[1:]
		}
		s.Hands[playerID] = hand
	}
}

// firstPlayerIndex returns the join-order position of the player holding
// the globally lowest-power card at deal time. Ties break to the first
// holder in scan order: players in join order, each hand front to back.
func (s *GameState) firstPlayerIndex() int {
	best := 0
	bestPower := -1
	for i, playerID := range s.PlayerOrder {
		for _, card := range s.Hands[playerID] {
			if bestPower < 0 || card.Power < bestPower {
				bestPower = card.Power
				best = i
			}
		}
	}
	return best
}

// startGame deals the shuffled deck, determines the first player,
// assigns roles and moves the snapshot into the playing phase. The deck
// must already be shuffled.
func (s *GameState) startGame(deck []Card) {
	s.Deck = deck
	s.Hands = make(map[string][]Card, len(s.PlayerOrder))
	s.deal()
	s.Roles = rules.AssignRoles(s.PlayerOrder, s.firstPlayerIndex())
	s.clearTable()
	s.resetTrick()
	s.DrawQueue = nil
	s.Finished = false
	s.LoserID = ""
	s.Phase = PhasePlaying
}

// resetToLobby returns the snapshot to a fresh lobby, preserving the
// registered players and the host.
func (s *GameState) resetToLobby() {
	s.Phase = PhaseLobby
	s.Roles = make(map[string]rules.Role)
	s.Hands = make(map[string][]Card)
	s.Deck = nil
	s.clearTable()
	s.resetTrick()
	s.DrawQueue = nil
	s.Finished = false
	s.LoserID = ""
}

// checkGameOver marks the snapshot finished once the deck is exhausted
// and at most one player still holds cards; that player is the loser.
// Called after every draw-processing step.
func (s *GameState) checkGameOver() {
	if len(s.Deck) > 0 || s.Phase != PhasePlaying {
		return
	}
	holders := make([]string, 0, 2)
	for _, playerID := range s.PlayerOrder {
		if len(s.Hands[playerID]) > 0 {
			holders = append(holders, playerID)
		}
	}
	if len(holders) > 1 {
		return
	}
	s.Finished = true
	if len(holders) == 1 {
		s.LoserID = holders[0]
	}
}
