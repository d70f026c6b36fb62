package game

import (
	"github.com/durakfree/durak-server-go/internal/game/rules"
)

// removeFromHand removes the card at handIndex from the player's hand,
// verifying that the index still holds the expected card id. The guard
// defends against stale indices from a client that raced another action.
func (s *GameState) removeFromHand(playerID string, handIndex int, cardID int) (Card, error) {
	hand, ok := s.Hands[playerID]
	if !ok {
		return Card{}, NewRuleError(ErrUnknownPlayer, "player %s has no hand", playerID)
	}
	if handIndex < 0 || handIndex >= len(hand) {
		return Card{}, NewRuleError(ErrStaleHand, "hand index %d out of range for player %s", handIndex, playerID)
	}
	card := hand[handIndex]
	if card.ID != cardID {
		return Card{}, NewRuleError(ErrStaleHand, "hand index %d holds card %d, expected %d", handIndex, card.ID, cardID)
	}
	s.Hands[playerID] = append(hand[:handIndex:handIndex], hand[handIndex+1:]...)
	return card, nil
}

// placeAttackCard moves a card from the player's hand into the lowest
// empty attack slot. Faction-ledger updates and the main-attacker flag
// are composed by the engine, not here: the exact faction transition
// depends on whether this is the first card, a plain followup, or an
// attach through a defense card.
func (s *GameState) placeAttackCard(playerID string, card Card, handIndex int) error {
	slot := s.firstEmptySlot()
	if slot < 0 {
		return NewRuleError(ErrTableFull, "all %d attack slots are occupied", TableSize)
	}
	placed, err := s.removeFromHand(playerID, handIndex, card.ID)
	if err != nil {
		return err
	}
	s.Slots[slot] = &placed
	return nil
}

// placeDefenseCard moves a card from the defender's hand into the
// defense slot opposite the given attack slot and registers its faction
// contribution with the ledger.
func (s *GameState) placeDefenseCard(playerID string, card Card, handIndex, attackSlot int) error {
	if attackSlot < 0 || attackSlot >= TableSize || s.Slots[attackSlot] == nil {
		return NewRuleError(ErrNoSuchAttack, "no attack card in slot %d", attackSlot)
	}
	attack := *s.Slots[attackSlot]
	if s.DefenseSlots[attackSlot] != nil {
		return NewRuleError(ErrSlotOccupied, "attack in slot %d is already defended by %s", attackSlot, s.DefenseSlots[attackSlot].Name)
	}
	if !rules.ValidateDefenseCard(card.Power, attack.Power) {
		return NewRuleError(ErrInsufficientPower,
			"%s (power %d) cannot beat %s (power %d)",
			card.Name, card.Power, attack.Name, attack.Power)
	}
	placed, err := s.removeFromHand(playerID, handIndex, card.ID)
	if err != nil {
		return err
	}
	s.DefenseSlots[attackSlot] = &placed
	s.Ledger.RecordDefense(placed.FactionSet(), s.AttackCount() == TableSize)
	return nil
}

// takeTable moves every card on the table to the end of the taking
// player's hand, attack cards first, then defense cards, each in slot
// order. No-op on an empty table.
func (s *GameState) takeTable(playerID string) {
	hand := s.Hands[playerID]
	for _, c := range s.Slots {
		if c != nil {
			hand = append(hand, *c)
		}
	}
	for _, c := range s.DefenseSlots {
		if c != nil {
			hand = append(hand, *c)
		}
	}
	s.Hands[playerID] = hand
	s.clearTable()
}

// clearTable resets both slot rows to empties.
func (s *GameState) clearTable() {
	s.Slots = make([]*Card, TableSize)
	s.DefenseSlots = make([]*Card, TableSize)
}

// resetTrick clears all per-trick gating flags and faction state.
func (s *GameState) resetTrick() {
	s.Flags = rules.NewTrickFlags()
	s.Ledger.Reset()
}
