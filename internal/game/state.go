package game

import (
	"github.com/durakfree/durak-server-go/internal/game/factions"
	"github.com/durakfree/durak-server-go/internal/game/rules"
)

const (
	// TableSize is the number of attack slots; at most six simultaneous
	// attacks exist in a trick.
	TableSize = 6
	// HandTarget is the hand size players are replenished to.
	HandTarget = 6
)

// Phase is the coarse lifecycle phase of a game.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePlaying Phase = "playing"
)

// Card is an immutable card value. Identity is by ID; the catalog owns
// name, power and faction data.
type Card struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Power    int    `json:"power"`
	Factions []int  `json:"factions"`
}

// FactionSet returns the card's factions as a set.
func (c Card) FactionSet() factions.Set {
	return factions.NewSet(c.Factions...)
}

// GameState is the root aggregate. It is treated as immutable: every
// engine operation clones the snapshot, mutates the clone behind the
// copy-on-write boundary, and returns it. The authoritative snapshot is
// owned by the caller's store, never by the engine.
type GameState struct {
	GameID string `json:"gameId"`
	Phase  Phase  `json:"phase"`
	HostID string `json:"hostId"`

	// PlayerOrder is the join order; PlayerNames maps player id to
	// display name. Go maps do not preserve insertion order, so the
	// order lives in its own slice.
	PlayerOrder []string              `json:"playerOrder"`
	PlayerNames map[string]string     `json:"playerNames"`
	Roles       map[string]rules.Role `json:"roles"`

	Hands map[string][]Card `json:"hands"`
	Deck  []Card            `json:"deck"`

	// Slots is the left-packed attack row; DefenseSlots is parallel to
	// it, DefenseSlots[i] defending Slots[i]. nil means empty.
	Slots        []*Card `json:"slots"`
	DefenseSlots []*Card `json:"defenseSlots"`

	Ledger *factions.Ledger `json:"ledger"`
	Flags  rules.TrickFlags `json:"flags"`

	DrawQueue []string `json:"drawQueue"`

	Finished bool   `json:"finished"`
	LoserID  string `json:"loserId,omitempty"`
}

// NewLobby creates a fresh lobby snapshot with the host as the only
// registered player.
func NewLobby(gameID, hostID, hostName string) *GameState {
	s := &GameState{
		GameID:      gameID,
		Phase:       PhaseLobby,
		HostID:      hostID,
		PlayerOrder: []string{hostID},
		PlayerNames: map[string]string{hostID: hostName},
		Roles:       make(map[string]rules.Role),
		Hands:       make(map[string][]Card),
		Slots:       make([]*Card, TableSize),
		DefenseSlots: make([]*Card, TableSize),
		Ledger:      factions.NewLedger(),
		Flags:       rules.NewTrickFlags(),
	}
	return s
}

// Clone creates a deep copy of the snapshot. Card values are copied by
// value; every map, slice and the ledger are fresh allocations.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		GameID:   s.GameID,
		Phase:    s.Phase,
		HostID:   s.HostID,
		Ledger:   s.Ledger.Clone(),
		Flags:    s.Flags,
		Finished: s.Finished,
		LoserID:  s.LoserID,
	}

	out.PlayerOrder = append([]string(nil), s.PlayerOrder...)
	out.PlayerNames = make(map[string]string, len(s.PlayerNames))
	for id, name := range s.PlayerNames {
		out.PlayerNames[id] = name
	}
	out.Roles = make(map[string]rules.Role, len(s.Roles))
	for id, role := range s.Roles {
		out.Roles[id] = role
	}
	out.Hands = make(map[string][]Card, len(s.Hands))
	for id, hand := range s.Hands {
		out.Hands[id] = append([]Card(nil), hand...)
	}
	out.Deck = append([]Card(nil), s.Deck...)
	out.Slots = cloneSlots(s.Slots)
	out.DefenseSlots = cloneSlots(s.DefenseSlots)
	out.DrawQueue = append([]string(nil), s.DrawQueue...)
	return out
}

func cloneSlots(slots []*Card) []*Card {
	out := make([]*Card, len(slots))
	for i, c := range slots {
		if c != nil {
			card := *c
			out[i] = &card
		}
	}
	return out
}

// PlayerCount returns the number of registered players.
func (s *GameState) PlayerCount() int {
	return len(s.PlayerOrder)
}

// RoleOf returns the player's current role; unknown players observe.
func (s *GameState) RoleOf(playerID string) rules.Role {
	if role, ok := s.Roles[playerID]; ok {
		return role
	}
	return rules.RoleObserver
}

// HasPlayer returns true if the player is registered in this game.
func (s *GameState) HasPlayer(playerID string) bool {
	_, ok := s.PlayerNames[playerID]
	return ok
}

// AttackCount returns the number of attack cards on the table.
func (s *GameState) AttackCount() int {
	n := 0
	for _, c := range s.Slots {
		if c != nil {
			n++
		}
	}
	return n
}

// TableEmpty returns true when no attack or defense card is on the table.
func (s *GameState) TableEmpty() bool {
	for i := range s.Slots {
		if s.Slots[i] != nil || s.DefenseSlots[i] != nil {
			return false
		}
	}
	return true
}

// AllAttacksBeaten returns true when every attack card on the table has
// a defense card against it. Vacuously true for an empty table.
func (s *GameState) AllAttacksBeaten() bool {
	for i := range s.Slots {
		if s.Slots[i] != nil && s.DefenseSlots[i] == nil {
			return false
		}
	}
	return true
}

// firstEmptySlot returns the lowest-index empty attack slot, -1 if the
// table is full. The attack row is left-packed, so this is also the
// append position.
func (s *GameState) firstEmptySlot() int {
	for i, c := range s.Slots {
		if c == nil {
			return i
		}
	}
	return -1
}

// cardAt resolves a hand index to a card without removing it.
func (s *GameState) cardAt(playerID string, handIndex int) (Card, error) {
	hand, ok := s.Hands[playerID]
	if !ok {
		return Card{}, NewRuleError(ErrUnknownPlayer, "player %s has no hand", playerID)
	}
	if handIndex < 0 || handIndex >= len(hand) {
		return Card{}, NewRuleError(ErrStaleHand, "hand index %d out of range for player %s", handIndex, playerID)
	}
	return hand[handIndex], nil
}

// defenseFactionsExcluding returns the union of factions carried by the
// defense cards on the table other than the given card.
func (s *GameState) defenseFactionsExcluding(cardID int) factions.Set {
	out := factions.NewSet()
	for _, c := range s.DefenseSlots {
		if c == nil || c.ID == cardID {
			continue
		}
		out = out.Union(c.FactionSet())
	}
	return out
}
