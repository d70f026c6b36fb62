package rules

import (
	"errors"
	"fmt"
)

// Sentinel errors for turn-order violations. The engine maps these onto
// its public error taxonomy.
var (
	// ErrIllegalRole is returned when a role is forbidden from an action.
	ErrIllegalRole = errors.New("role may not perform this action")
	// ErrNotYourPriority is returned when an attacking role acts out of
	// turn relative to the current attack priority.
	ErrNotYourPriority = errors.New("attack priority belongs to the other attacker")
)

// TrickFlags is the per-trick gating state: whose turn it is to add the
// next attack card and which pass/bito declarations are pending. It is a
// value type; transitions return a new value.
type TrickFlags struct {
	Priority              Role `json:"priority"`
	MainAttackerHasPlayed bool `json:"mainAttackerHasPlayed"`
	AttackerPassed        bool `json:"attackerPassed"`
	CoAttackerPassed      bool `json:"coAttackerPassed"`
	AttackerBitoPressed   bool `json:"attackerBitoPressed"`
	CoAttackerBitoPressed bool `json:"coAttackerBitoPressed"`
}

// NewTrickFlags returns the flag state at the start of a trick: priority
// with the main attacker, nothing played, nothing declared.
func NewTrickFlags() TrickFlags {
	return TrickFlags{Priority: RoleAttacker}
}

// CanAttack reports whether the given role may add an attack card now.
func (f TrickFlags) CanAttack(role Role) error {
	if !role.IsAttacking() {
		return fmt.Errorf("%w: %s cannot attack", ErrIllegalRole, role)
	}
	if f.Priority != role {
		return fmt.Errorf("%w: priority is with the %s", ErrNotYourPriority, f.Priority)
	}
	switch role {
	case RoleAttacker:
		if f.AttackerPassed {
			return fmt.Errorf("%w: attacker already passed this trick", ErrIllegalRole)
		}
	case RoleCoAttacker:
		if !f.MainAttackerHasPlayed {
			return fmt.Errorf("%w: co-attacker cannot act before the main attacker has played", ErrNotYourPriority)
		}
		if f.CoAttackerPassed {
			return fmt.Errorf("%w: co-attacker already passed this trick", ErrIllegalRole)
		}
	}
	return nil
}

// CanPressBito reports whether the given role may declare bito.
// allBeaten must be true only when every attack card on the table has a
// defense card against it.
func (f TrickFlags) CanPressBito(role Role, playerCount int, allBeaten bool) error {
	if !role.IsAttacking() {
		return fmt.Errorf("%w: %s cannot declare bito", ErrIllegalRole, role)
	}
	if !f.MainAttackerHasPlayed {
		return fmt.Errorf("%w: bito requires the main attacker to have played", ErrIllegalRole)
	}
	if !allBeaten {
		return fmt.Errorf("%w: unbeaten attack cards remain on the table", ErrIllegalRole)
	}
	if playerCount == 2 && role != RoleAttacker {
		return fmt.Errorf("%w: only the attacker may declare bito with two players", ErrIllegalRole)
	}
	if playerCount >= 3 {
		if (role == RoleAttacker && (f.AttackerBitoPressed || f.AttackerPassed)) ||
			(role == RoleCoAttacker && (f.CoAttackerBitoPressed || f.CoAttackerPassed)) {
			return fmt.Errorf("%w: %s already declared for this trick", ErrIllegalRole, role)
		}
	}
	return nil
}

// PressBito applies a bito declaration with three or more players:
// priority flips to the other attacking role, the presser's own bito
// flag is raised and the other one cleared. With two players the trick
// ends immediately instead; the caller finalizes the table without
// touching the flags.
func (f TrickFlags) PressBito(role Role) TrickFlags {
	if role == RoleAttacker {
		f.AttackerBitoPressed = true
		f.CoAttackerBitoPressed = false
		f.Priority = RoleCoAttacker
	} else {
		f.CoAttackerBitoPressed = true
		f.AttackerBitoPressed = false
		f.Priority = RoleAttacker
	}
	return f
}

// CanPressPass reports whether the given role may pass. Passing only
// exists with three or more players.
func (f TrickFlags) CanPressPass(role Role, playerCount int) error {
	if !role.IsAttacking() {
		return fmt.Errorf("%w: %s cannot pass", ErrIllegalRole, role)
	}
	if playerCount < 3 {
		return fmt.Errorf("%w: passing requires at least three players", ErrIllegalRole)
	}
	if (role == RoleAttacker && f.AttackerPassed) || (role == RoleCoAttacker && f.CoAttackerPassed) {
		return fmt.Errorf("%w: %s already passed this trick", ErrIllegalRole, role)
	}
	return nil
}

// PressPass marks the presser's pass flag. Priority moves to the other
// attacking role if that role has not passed yet, so the trick cannot
// deadlock on a passed priority holder.
func (f TrickFlags) PressPass(role Role) TrickFlags {
	if role == RoleAttacker {
		f.AttackerPassed = true
		if !f.CoAttackerPassed {
			f.Priority = RoleCoAttacker
		}
	} else {
		f.CoAttackerPassed = true
		if !f.AttackerPassed {
			f.Priority = RoleAttacker
		}
	}
	return f
}

// TrickComplete reports whether the trick is finished and must be
// finalized. With two players completion is signaled directly by the
// bito action, never by this check.
func (f TrickFlags) TrickComplete(playerCount int, allBeaten bool) bool {
	return allBeaten && playerCount >= 3 && f.AttackerPassed && f.CoAttackerPassed
}
