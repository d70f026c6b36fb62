package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durakfree/durak-server-go/internal/game/rules"
)

func tcard(id, power int, facs ...int) Card {
	return Card{ID: id, Name: fmt.Sprintf("card-%d", id), Power: power, Factions: facs}
}

// playing builds an in-progress game with roles assigned from the first
// player: players[0] attacks, players[1] defends, players[2] co-attacks.
func playing(players ...string) *GameState {
	s := NewLobby("test-game", players[0], players[0])
	for _, p := range players[1:] {
		s.PlayerOrder = append(s.PlayerOrder, p)
		s.PlayerNames[p] = p
	}
	s.Phase = PhasePlaying
	s.Roles = rules.AssignRoles(s.PlayerOrder, 0)
	for _, p := range players {
		s.Hands[p] = []Card{}
	}
	return s
}

func testEngine() *Engine {
	return NewEngine(nil, nil)
}

func TestPlayAttackAndDefend(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1, 2)}
	s.Hands["b"] = []Card{tcard(2, 80, 2, 3)}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	require.NotNil(t, next.Slots[0])
	assert.Equal(t, 1, next.Slots[0].ID)
	assert.Empty(t, next.Hands["a"])
	assert.True(t, next.Flags.MainAttackerHasPlayed)
	assert.Equal(t, 1, next.Ledger.Counter.Get(1))
	assert.Equal(t, 1, next.Ledger.Counter.Get(2))

	// The input snapshot is never touched.
	assert.Nil(t, s.Slots[0])
	assert.Len(t, s.Hands["a"], 1)

	next2, err := e.PlayDefenseCard(next, "b", 0, 0)
	require.NoError(t, err)
	require.NotNil(t, next2.DefenseSlots[0])
	assert.Equal(t, 2, next2.DefenseSlots[0].ID)
	assert.Empty(t, next2.Hands["b"])
	assert.Equal(t, 2, next2.Ledger.Counter.Get(2))
	assert.Equal(t, 1, next2.Ledger.Counter.Get(3))
	assert.True(t, next2.AllAttacksBeaten())
}

func TestFollowupAttackNeedsSharedFaction(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1, 2), tcard(3, 40, 5)}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)

	_, err = e.PlayAttackCard(next, "a", 0)
	require.Error(t, err)
	assert.Equal(t, ErrNoCommonFaction, CodeOf(err))

	// A rejected action must leave the snapshot intact.
	assert.Len(t, next.Hands["a"], 1)
	assert.Nil(t, next.Slots[1])
}

func TestFollowupAttackNarrowsActiveFactions(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1, 2), tcard(3, 40, 2, 5)}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	next, err = e.PlayAttackCard(next, "a", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, next.AttackCount())
	assert.Len(t, next.Ledger.Active, 1)
	assert.True(t, next.Ledger.Active.Contains(2))
}

func TestDefenseRejections(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1)}
	s.Hands["b"] = []Card{tcard(2, 60, 2), tcard(3, 90, 2)}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)

	_, err = e.PlayDefenseCard(next, "b", 0, 0)
	assert.Equal(t, ErrInsufficientPower, CodeOf(err))

	_, err = e.PlayDefenseCard(next, "b", 1, 3)
	assert.Equal(t, ErrNoSuchAttack, CodeOf(err))

	_, err = e.PlayDefenseCard(next, "a", 0, 0)
	assert.Equal(t, ErrIllegalRole, CodeOf(err))

	next, err = e.PlayDefenseCard(next, "b", 1, 0)
	require.NoError(t, err)
	_, err = e.PlayDefenseCard(next, "b", 0, 0)
	assert.Equal(t, ErrSlotOccupied, CodeOf(err))
}

func TestAttackOnFullTable(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	for i := 0; i < TableSize; i++ {
		c := tcard(10+i, 30, 1)
		s.Slots[i] = &c
	}
	s.Ledger.RecordFirstAttack(tcard(10, 30, 1).FactionSet())
	s.Flags.MainAttackerHasPlayed = true
	s.Hands["a"] = []Card{tcard(1, 70, 1)}

	_, err := e.PlayAttackCard(s, "a", 0)
	assert.Equal(t, ErrTableFull, CodeOf(err))
}

func TestAttachThroughDefense(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1), tcard(3, 40, 4)}
	s.Hands["b"] = []Card{tcard(2, 80, 3, 4)}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	next, err = e.PlayDefenseCard(next, "b", 0, 0)
	require.NoError(t, err)

	// Card 3 shares no faction with the first attack, but faction 4
	// entered the trick through the defense card in slot 0.
	next2, err := e.AttachThroughDefense(next, "a", 0, 0)
	require.NoError(t, err)
	require.NotNil(t, next2.Slots[1])
	assert.Equal(t, 3, next2.Slots[1].ID)
	assert.Empty(t, next2.Hands["a"])

	// Faction 4 is now spent against this defense card.
	avail := next2.Ledger.AvailableFactions(2, tcard(2, 80, 3, 4).FactionSet())
	assert.False(t, avail.Contains(4))
	assert.True(t, avail.Contains(3))
}

func TestAttachFailureHasNoEffect(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1), tcard(3, 40, 9)}
	s.Hands["b"] = []Card{tcard(2, 80, 3, 4)}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	next, err = e.PlayDefenseCard(next, "b", 0, 0)
	require.NoError(t, err)

	before, err := next.ComputeChecksum()
	require.NoError(t, err)

	_, err = e.AttachThroughDefense(next, "a", 0, 0)
	assert.Equal(t, ErrNoCommonFaction, CodeOf(err))

	_, err = e.AttachThroughDefense(next, "a", 0, 3)
	assert.Equal(t, ErrNoSuchAttack, CodeOf(err))

	after, err := next.ComputeChecksum()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTakeCardsRotatesAndReplenishes(t *testing.T) {
	e := testEngine()
	s := playing("a", "b", "c")
	s.Hands["a"] = []Card{tcard(1, 70, 1)}
	s.Hands["b"] = []Card{tcard(2, 50, 2)}
	s.Hands["c"] = []Card{tcard(3, 60, 3)}
	for i := 0; i < 12; i++ {
		s.Deck = append(s.Deck, tcard(100+i, 30, 1))
	}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	next, err = e.TakeCards(next, "b")
	require.NoError(t, err)

	// Failed defense: attacker keeps pressure, roles shift past the taker.
	assert.Equal(t, rules.RoleAttacker, next.RoleOf("c"))
	assert.Equal(t, rules.RoleDefender, next.RoleOf("a"))
	assert.Equal(t, rules.RoleCoAttacker, next.RoleOf("b"))

	// The taker absorbed the table and was replenished to a full hand.
	require.Len(t, next.Hands["b"], HandTarget)
	assert.Equal(t, 2, next.Hands["b"][0].ID)
	assert.Equal(t, 1, next.Hands["b"][1].ID)
	assert.Len(t, next.Deck, 8)
	assert.True(t, next.TableEmpty())
	assert.Empty(t, next.DrawQueue)
}

func TestTakeCardsGuards(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1)}

	_, err := e.TakeCards(s, "b")
	assert.Equal(t, ErrNothingToTake, CodeOf(err))

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	_, err = e.TakeCards(next, "a")
	assert.Equal(t, ErrIllegalRole, CodeOf(err))
}

func TestTwoPlayerBitoSwapsRoles(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1)}
	s.Hands["b"] = []Card{tcard(2, 80, 1)}
	for i := 0; i < 14; i++ {
		s.Deck = append(s.Deck, tcard(100+i, 30, 1))
	}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	next, err = e.PlayDefenseCard(next, "b", 0, 0)
	require.NoError(t, err)

	// The defender cannot declare bito.
	_, err = e.PressBito(next, "b")
	assert.Equal(t, ErrIllegalRole, CodeOf(err))

	next, err = e.PressBito(next, "a")
	require.NoError(t, err)

	// Successful defense: the roles swap and both hands refill.
	assert.Equal(t, rules.RoleDefender, next.RoleOf("a"))
	assert.Equal(t, rules.RoleAttacker, next.RoleOf("b"))
	assert.True(t, next.TableEmpty())
	assert.Len(t, next.Hands["a"], HandTarget)
	assert.Len(t, next.Hands["b"], HandTarget)
	assert.Len(t, next.Deck, 2)
	assert.False(t, next.Finished)
}

func TestBitoRejectedWithUnbeatenAttack(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1)}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	_, err = e.PressBito(next, "a")
	assert.Equal(t, ErrIllegalRole, CodeOf(err))
}

func TestDoublePassFinalizesTrick(t *testing.T) {
	e := testEngine()
	s := playing("a", "b", "c")
	s.Hands["a"] = []Card{tcard(1, 50, 1)}
	s.Hands["b"] = []Card{tcard(2, 60, 2)}
	s.Hands["c"] = []Card{tcard(3, 40, 3)}
	for i := 0; i < 18; i++ {
		s.Deck = append(s.Deck, tcard(100+i, 30, 1))
	}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	next, err = e.PlayDefenseCard(next, "b", 0, 0)
	require.NoError(t, err)

	next, err = e.PressPass(next, "a")
	require.NoError(t, err)
	assert.False(t, next.TableEmpty())

	next, err = e.PressPass(next, "c")
	require.NoError(t, err)

	// Trick over: cards leave play, roles rotate for a held defense.
	assert.True(t, next.TableEmpty())
	assert.Equal(t, rules.RoleAttacker, next.RoleOf("b"))
	assert.Equal(t, rules.RoleDefender, next.RoleOf("c"))
	assert.Equal(t, rules.RoleCoAttacker, next.RoleOf("a"))
	for _, p := range []string{"a", "b", "c"} {
		assert.Len(t, next.Hands[p], HandTarget)
	}
	assert.Len(t, next.Deck, 1)
}

func TestGameOverMarksLoser(t *testing.T) {
	e := testEngine()
	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1)}
	s.Hands["b"] = []Card{tcard(2, 80, 1), tcard(3, 40, 2)}

	next, err := e.PlayAttackCard(s, "a", 0)
	require.NoError(t, err)
	next, err = e.PlayDefenseCard(next, "b", 0, 0)
	require.NoError(t, err)
	next, err = e.PressBito(next, "a")
	require.NoError(t, err)

	// Deck is empty and only b still holds a card.
	assert.True(t, next.Finished)
	assert.Equal(t, "b", next.LoserID)

	_, err = e.PlayAttackCard(next, "b", 0)
	assert.Equal(t, ErrGameFinished, CodeOf(err))
}

func TestActionGuards(t *testing.T) {
	e := testEngine()

	lobby := NewLobby("g", "a", "a")
	_, err := e.PlayAttackCard(lobby, "a", 0)
	assert.Equal(t, ErrWrongPhase, CodeOf(err))

	s := playing("a", "b")
	s.Hands["a"] = []Card{tcard(1, 70, 1)}
	_, err = e.PlayAttackCard(s, "zzz", 0)
	assert.Equal(t, ErrUnknownPlayer, CodeOf(err))

	_, err = e.PlayAttackCard(s, "a", 5)
	assert.Equal(t, ErrStaleHand, CodeOf(err))
}
