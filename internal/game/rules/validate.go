package rules

import (
	"fmt"

	"github.com/durakfree/durak-server-go/internal/game/factions"
)

// ValidationResult reports whether a card play is legal, with a
// user-facing reason when it is not.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// ValidateDefenseCard decides whether a card may defend an attack card.
// Raw power suffices; factions play no role in direct defense.
func ValidateDefenseCard(defensePower, attackPower int) bool {
	return defensePower >= attackPower
}

// ValidateAttackCard decides whether a card may be played as an attack.
// The first card of a trick is always legal; any later card must share a
// faction with the active first-attack set.
func ValidateAttackCard(card factions.Set, isFirstAttackCard bool, active factions.Set) ValidationResult {
	if isFirstAttackCard {
		return ValidationResult{Valid: true}
	}
	if len(card.Intersect(active)) > 0 {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{
		Valid: false,
		Reason: fmt.Sprintf("card factions %s share no faction with active attack factions %s",
			card, active),
	}
}
