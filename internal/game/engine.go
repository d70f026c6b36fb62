package game

import (
	"errors"

	"go.uber.org/zap"

	"github.com/durakfree/durak-server-go/internal/game/factions"
	"github.com/durakfree/durak-server-go/internal/game/rules"
)

// Engine is the rule engine boundary. Every operation is a pure
// function over a GameState snapshot: the input is never mutated, and
// the result is either a complete new snapshot or a RuleError with no
// partial effect. The engine holds no game state of its own; callers
// apply operations under an external at-most-one-writer discipline.
type Engine struct {
	logger  *zap.Logger
	catalog []Card
	shuffle ShuffleFunc
}

// NewEngine creates an engine over the given card catalog.
func NewEngine(catalog []Card, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:  logger,
		catalog: append([]Card(nil), catalog...),
		shuffle: SeededShuffle,
	}
}

// JoinLobby registers a player in a lobby-phase game.
func (e *Engine) JoinLobby(s *GameState, playerID, name string) (*GameState, error) {
	if s.Phase != PhaseLobby {
		return nil, NewRuleError(ErrWrongPhase, "players can only join in the lobby")
	}
	if s.HasPlayer(playerID) {
		return nil, NewRuleError(ErrUnknownPlayer, "player %s already joined", playerID)
	}
	if (s.PlayerCount()+1)*HandTarget > len(e.catalog) {
		return nil, NewRuleError(ErrGameFull, "deck of %d cards cannot deal %d hands", len(e.catalog), s.PlayerCount()+1)
	}
	next := s.Clone()
	next.PlayerOrder = append(next.PlayerOrder, playerID)
	next.PlayerNames[playerID] = name
	e.logger.Info("player joined lobby",
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
		zap.Int("players", next.PlayerCount()),
	)
	return next, nil
}

// LeaveLobby removes a player from a lobby-phase game. If the host
// leaves, the longest-joined remaining player becomes host.
func (e *Engine) LeaveLobby(s *GameState, playerID string) (*GameState, error) {
	if s.Phase != PhaseLobby {
		return nil, NewRuleError(ErrWrongPhase, "players can only leave in the lobby")
	}
	if !s.HasPlayer(playerID) {
		return nil, NewRuleError(ErrUnknownPlayer, "player %s is not in this game", playerID)
	}
	next := s.Clone()
	order := next.PlayerOrder[:0]
	for _, id := range next.PlayerOrder {
		if id != playerID {
			order = append(order, id)
		}
	}
	next.PlayerOrder = order
	delete(next.PlayerNames, playerID)
	delete(next.Hands, playerID)
	if next.HostID == playerID {
		next.HostID = ""
		if len(next.PlayerOrder) > 0 {
			next.HostID = next.PlayerOrder[0]
		}
	}
	e.logger.Info("player left lobby",
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
	)
	return next, nil
}

// StartGame shuffles the catalog with the given seed, deals six cards to
// every player in join order, determines the first player by lowest card
// power, assigns roles and enters the playing phase. Only the host may
// start the game.
func (e *Engine) StartGame(s *GameState, playerID string, seed int64) (*GameState, error) {
	if s.Phase != PhaseLobby {
		return nil, NewRuleError(ErrWrongPhase, "the game has already started")
	}
	if playerID != s.HostID {
		return nil, NewRuleError(ErrNotHost, "only the host may start the game")
	}
	if s.PlayerCount() == 0 {
		return nil, NewRuleError(ErrNoPlayers, "cannot start a game with no players")
	}
	next := s.Clone()
	next.startGame(e.shuffle(seed, e.catalog))
	e.logger.Info("game started",
		zap.String("game_id", s.GameID),
		zap.Int("players", next.PlayerCount()),
		zap.Int64("seed", seed),
		zap.String("attacker", rules.HolderOf(next.Roles, next.PlayerOrder, rules.RoleAttacker)),
	)
	return next, nil
}

// Restart returns a playing or finished game to a fresh lobby,
// preserving the registered players and the host.
func (e *Engine) Restart(s *GameState, playerID string) (*GameState, error) {
	if playerID != s.HostID {
		return nil, NewRuleError(ErrNotHost, "only the host may restart the game")
	}
	next := s.Clone()
	next.resetToLobby()
	e.logger.Info("game reset to lobby", zap.String("game_id", s.GameID))
	return next, nil
}

// PlayAttackCard plays the card at handIndex as an attack. The first
// card of a trick seeds the active faction set; later cards must share a
// faction with it and narrow it to the intersection.
func (e *Engine) PlayAttackCard(s *GameState, playerID string, handIndex int) (*GameState, error) {
	if err := e.guardAction(s, playerID); err != nil {
		return nil, err
	}
	role := s.RoleOf(playerID)
	if err := s.Flags.CanAttack(role); err != nil {
		return nil, mapRulesError(err)
	}
	card, err := s.cardAt(playerID, handIndex)
	if err != nil {
		return nil, err
	}
	first := s.AttackCount() == 0
	if res := rules.ValidateAttackCard(card.FactionSet(), first, s.Ledger.Active); !res.Valid {
		return nil, NewRuleError(ErrNoCommonFaction, "%s", res.Reason).
			WithDetail("card_factions", card.FactionSet().String()).
			WithDetail("active_factions", s.Ledger.Active.String())
	}
	if s.firstEmptySlot() < 0 {
		return nil, NewRuleError(ErrTableFull, "all %d attack slots are occupied", TableSize)
	}

	next := s.Clone()
	if err := next.placeAttackCard(playerID, card, handIndex); err != nil {
		return nil, err
	}
	if first {
		next.Ledger.RecordFirstAttack(card.FactionSet())
	} else if err := next.Ledger.RecordAttack(card.FactionSet()); err != nil {
		return nil, mapFactionError(err)
	}
	if role == rules.RoleAttacker {
		next.Flags.MainAttackerHasPlayed = true
	}
	e.logger.Debug("attack card played",
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
		zap.Int("card_id", card.ID),
		zap.Bool("first", first),
	)
	return next, nil
}

// PlayDefenseCard plays the card at handIndex against the attack in
// attackSlot. Defense is a raw power contest; factions only determine
// what the defense card later contributes to the ledger.
func (e *Engine) PlayDefenseCard(s *GameState, playerID string, handIndex, attackSlot int) (*GameState, error) {
	if err := e.guardAction(s, playerID); err != nil {
		return nil, err
	}
	if s.RoleOf(playerID) != rules.RoleDefender {
		return nil, NewRuleError(ErrIllegalRole, "only the defender may defend")
	}
	card, err := s.cardAt(playerID, handIndex)
	if err != nil {
		return nil, err
	}

	next := s.Clone()
	if err := next.placeDefenseCard(playerID, card, handIndex, attackSlot); err != nil {
		return nil, err
	}
	e.logger.Debug("defense card played",
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
		zap.Int("card_id", card.ID),
		zap.Int("attack_slot", attackSlot),
	)
	if next.Flags.TrickComplete(next.PlayerCount(), next.AllAttacksBeaten()) {
		e.finalizeTrick(next)
	}
	return next, nil
}

// AttachThroughDefense plays the card at handIndex as an attack whose
// legality derives from sharing a faction with the defense card in
// defenseSlot rather than with the trick's first attack card. The attach
// computation and the placement are atomic: if either fails, no effect
// is observable.
func (e *Engine) AttachThroughDefense(s *GameState, playerID string, handIndex, defenseSlot int) (*GameState, error) {
	if err := e.guardAction(s, playerID); err != nil {
		return nil, err
	}
	role := s.RoleOf(playerID)
	if err := s.Flags.CanAttack(role); err != nil {
		return nil, mapRulesError(err)
	}
	card, err := s.cardAt(playerID, handIndex)
	if err != nil {
		return nil, err
	}
	if defenseSlot < 0 || defenseSlot >= TableSize || s.DefenseSlots[defenseSlot] == nil {
		return nil, NewRuleError(ErrNoSuchAttack, "no defense card in slot %d", defenseSlot)
	}
	if s.firstEmptySlot() < 0 {
		return nil, NewRuleError(ErrTableFull, "all %d attack slots are occupied", TableSize)
	}

	next := s.Clone()
	defense := *next.DefenseSlots[defenseSlot]
	others := next.defenseFactionsExcluding(defense.ID)
	if err := next.Ledger.RecordAttach(card.FactionSet(), defense.ID, defense.FactionSet(), others); err != nil {
		return nil, mapFactionError(err)
	}
	if err := next.placeAttackCard(playerID, card, handIndex); err != nil {
		return nil, err
	}
	if role == rules.RoleAttacker {
		next.Flags.MainAttackerHasPlayed = true
	}
	e.logger.Debug("attack attached through defense",
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
		zap.Int("card_id", card.ID),
		zap.Int("defense_card_id", defense.ID),
	)
	return next, nil
}

// TakeCards makes the defender absorb the table: every attack and
// defense card moves to their hand, roles rotate for a failed defense,
// and the taker is immediately replenished from the deck.
func (e *Engine) TakeCards(s *GameState, playerID string) (*GameState, error) {
	if err := e.guardAction(s, playerID); err != nil {
		return nil, err
	}
	if s.RoleOf(playerID) != rules.RoleDefender {
		return nil, NewRuleError(ErrIllegalRole, "only the defender may take the table")
	}
	if s.TableEmpty() {
		return nil, NewRuleError(ErrNothingToTake, "the table is empty")
	}

	next := s.Clone()
	next.takeTable(playerID)
	next.resetTrick()
	next.Roles = rules.TakeRotation(next.PlayerCount())(next.PlayerOrder, next.Roles)
	next.DrawQueue = []string{playerID}
	next.processDrawQueue()
	next.checkGameOver()
	e.logger.Debug("defender took the table",
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
		zap.Int("hand_size", len(next.Hands[playerID])),
	)
	return next, nil
}

// PressBito declares that all current attacks are beaten. With two
// players this ends the trick immediately; with three or more it flips
// attack priority to the other attacking role and records the pending
// declaration.
func (e *Engine) PressBito(s *GameState, playerID string) (*GameState, error) {
	if err := e.guardAction(s, playerID); err != nil {
		return nil, err
	}
	role := s.RoleOf(playerID)
	if err := s.Flags.CanPressBito(role, s.PlayerCount(), s.AllAttacksBeaten()); err != nil {
		return nil, mapRulesError(err)
	}

	next := s.Clone()
	if next.PlayerCount() == 2 {
		e.finalizeTrick(next)
	} else {
		next.Flags = next.Flags.PressBito(role)
	}
	e.logger.Debug("bito declared",
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
		zap.String("role", string(role)),
	)
	return next, nil
}

// PressPass marks an attacking role as done with this trick. Once both
// attacking roles have passed and every attack is beaten, the trick is
// finalized as a successful defense.
func (e *Engine) PressPass(s *GameState, playerID string) (*GameState, error) {
	if err := e.guardAction(s, playerID); err != nil {
		return nil, err
	}
	role := s.RoleOf(playerID)
	if err := s.Flags.CanPressPass(role, s.PlayerCount()); err != nil {
		return nil, mapRulesError(err)
	}

	next := s.Clone()
	next.Flags = next.Flags.PressPass(role)
	if next.Flags.TrickComplete(next.PlayerCount(), next.AllAttacksBeaten()) {
		e.finalizeTrick(next)
	}
	e.logger.Debug("pass declared",
		zap.String("game_id", s.GameID),
		zap.String("player_id", playerID),
		zap.String("role", string(role)),
	)
	return next, nil
}

// finalizeTrick clears the table after a successful defense, rotates
// roles with the bito rotation and replenishes every hand, starting the
// draw from the trick's attacker in join order.
func (e *Engine) finalizeTrick(next *GameState) {
	attacker := rules.HolderOf(next.Roles, next.PlayerOrder, rules.RoleAttacker)
	start := 0
	for i, id := range next.PlayerOrder {
		if id == attacker {
			start = i
			break
		}
	}
	queue := make([]string, 0, next.PlayerCount())
	for i := 0; i < next.PlayerCount(); i++ {
		queue = append(queue, next.PlayerOrder[(start+i)%next.PlayerCount()])
	}

	next.clearTable()
	next.resetTrick()
	next.Roles = rules.BitoRotation(next.PlayerCount())(next.PlayerOrder, next.Roles)
	next.DrawQueue = queue
	next.processDrawQueue()
	next.checkGameOver()
}

// guardAction rejects trick actions outside the playing phase, after the
// game ended, or from unknown players.
func (e *Engine) guardAction(s *GameState, playerID string) error {
	if s.Phase != PhasePlaying {
		return NewRuleError(ErrWrongPhase, "the game has not started")
	}
	if s.Finished {
		return NewRuleError(ErrGameFinished, "the game is over")
	}
	if !s.HasPlayer(playerID) {
		return NewRuleError(ErrUnknownPlayer, "player %s is not in this game", playerID)
	}
	return nil
}

// mapRulesError converts turn-order sentinels from the rules package
// into the public taxonomy.
func mapRulesError(err error) error {
	if errors.Is(err, rules.ErrNotYourPriority) {
		return NewRuleError(ErrNotYourPriority, "%s", err.Error())
	}
	return NewRuleError(ErrIllegalRole, "%s", err.Error())
}

// mapFactionError converts ledger errors into the public taxonomy,
// carrying both faction sets for diagnostics.
func mapFactionError(err error) error {
	var nc *factions.NoCommonFactionError
	if errors.As(err, &nc) {
		return NewRuleError(ErrNoCommonFaction, "%s", nc.Error()).
			WithDetail("card_factions", nc.CardFactions.String()).
			WithDetail("required_factions", nc.Required.String())
	}
	return err
}
