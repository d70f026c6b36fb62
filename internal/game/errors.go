package game

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why an action was rejected. Every rejection is an
// explicit result value; nothing in the engine panics or throws for
// control flow, and no action partially mutates state before failing.
type ErrorCode string

const (
	// ErrTableFull — attack placement attempted with all six slots occupied.
	ErrTableFull ErrorCode = "TABLE_FULL"
	// ErrNoSuchAttack — defense or attach references an empty slot.
	ErrNoSuchAttack ErrorCode = "NO_SUCH_ATTACK"
	// ErrSlotOccupied — defense targets an already-defended slot.
	ErrSlotOccupied ErrorCode = "SLOT_OCCUPIED"
	// ErrInsufficientPower — defense card is weaker than the attack card.
	ErrInsufficientPower ErrorCode = "INSUFFICIENT_POWER"
	// ErrNoCommonFaction — attack card shares no faction with the required set.
	ErrNoCommonFaction ErrorCode = "NO_COMMON_FACTION"
	// ErrIllegalRole — action attempted by a role forbidden from it.
	ErrIllegalRole ErrorCode = "ILLEGAL_ROLE"
	// ErrNotYourPriority — attacking role acted out of turn.
	ErrNotYourPriority ErrorCode = "NOT_YOUR_PRIORITY"
	// ErrNoPlayers — game creation attempted with zero registered players.
	ErrNoPlayers ErrorCode = "NO_PLAYERS"
	// ErrNothingToTake — take-cards invoked with an empty table.
	ErrNothingToTake ErrorCode = "NOTHING_TO_TAKE"

	// ErrWrongPhase — action does not belong to the current game phase.
	ErrWrongPhase ErrorCode = "WRONG_PHASE"
	// ErrUnknownPlayer — action referenced a player the game does not know.
	ErrUnknownPlayer ErrorCode = "UNKNOWN_PLAYER"
	// ErrStaleHand — hand index does not hold the expected card anymore.
	ErrStaleHand ErrorCode = "STALE_HAND"
	// ErrGameFinished — action attempted after the game ended.
	ErrGameFinished ErrorCode = "GAME_FINISHED"
	// ErrNotHost — lifecycle action attempted by a non-host player.
	ErrNotHost ErrorCode = "NOT_HOST"
	// ErrGameFull — join attempted when the deck cannot deal another hand.
	ErrGameFull ErrorCode = "GAME_FULL"
)

// RuleError is the engine's rejection value: a stable code for callers
// that branch on it, a human-readable reason, and optional diagnostic
// details for the presentation layer.
type RuleError struct {
	Code    ErrorCode         `json:"code"`
	Reason  string            `json:"reason"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// NewRuleError creates a rule error with a formatted reason.
func NewRuleError(code ErrorCode, format string, args ...interface{}) *RuleError {
	return &RuleError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// WithDetail attaches a diagnostic key/value pair and returns the error.
func (e *RuleError) WithDetail(key, value string) *RuleError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// CodeOf extracts the error code from an engine error, or "" when the
// error did not originate from the rule engine.
func CodeOf(err error) ErrorCode {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
