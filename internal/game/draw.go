package game

// processDrawQueue replenishes the hand of every queued player to
// HandTarget cards, drawing from the front of the deck and appending to
// the back of the hand, until the target is reached or the deck runs
// out. Relative order of the remaining deck is preserved. The queue is
// consumed; an empty queue is a no-op.
func (s *GameState) processDrawQueue() {
	for _, playerID := range s.DrawQueue {
		hand := s.Hands[playerID]
		for len(hand) < HandTarget && len(s.Deck) > 0 {
			hand = append(hand, s.Deck[0])
			s.Deck = s.Deck[1:]
		}
		s.Hands[playerID] = hand
	}
	s.DrawQueue = nil
}
