package rules

import (
	"errors"
	"testing"
)

func TestCanAttackRoleGating(t *testing.T) {
	f := NewTrickFlags()

	if err := f.CanAttack(RoleDefender); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("defender attack should be ErrIllegalRole, got %v", err)
	}
	if err := f.CanAttack(RoleObserver); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("observer attack should be ErrIllegalRole, got %v", err)
	}
	if err := f.CanAttack(RoleAttacker); err != nil {
		t.Fatalf("attacker with priority should attack, got %v", err)
	}
}

func TestCoAttackerBlockedBeforeMainAttackerPlays(t *testing.T) {
	f := NewTrickFlags()
	f.Priority = RoleCoAttacker

	if err := f.CanAttack(RoleCoAttacker); !errors.Is(err, ErrNotYourPriority) {
		t.Fatalf("co-attacker before main attacker played should be ErrNotYourPriority, got %v", err)
	}

	f.MainAttackerHasPlayed = true
	if err := f.CanAttack(RoleCoAttacker); err != nil {
		t.Fatalf("co-attacker with priority after main play should attack, got %v", err)
	}
}

func TestCanAttackPriorityGating(t *testing.T) {
	f := NewTrickFlags()
	f.MainAttackerHasPlayed = true
	f.Priority = RoleCoAttacker

	if err := f.CanAttack(RoleAttacker); !errors.Is(err, ErrNotYourPriority) {
		t.Fatalf("attacker without priority should be ErrNotYourPriority, got %v", err)
	}
}

func TestPassedRoleCannotAttack(t *testing.T) {
	f := NewTrickFlags()
	f.MainAttackerHasPlayed = true
	f = f.PressPass(RoleCoAttacker)
	f.Priority = RoleCoAttacker

	if err := f.CanAttack(RoleCoAttacker); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("passed co-attacker should be ErrIllegalRole, got %v", err)
	}
}

func TestCanPressBitoRequirements(t *testing.T) {
	f := NewTrickFlags()

	if err := f.CanPressBito(RoleAttacker, 3, true); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("bito before main attacker played should fail, got %v", err)
	}

	f.MainAttackerHasPlayed = true
	if err := f.CanPressBito(RoleAttacker, 3, false); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("bito with unbeaten attacks should fail, got %v", err)
	}
	if err := f.CanPressBito(RoleDefender, 3, true); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("defender bito should fail, got %v", err)
	}
	if err := f.CanPressBito(RoleAttacker, 3, true); err != nil {
		t.Fatalf("legal bito rejected: %v", err)
	}
}

func TestTwoPlayerBitoOnlyAttacker(t *testing.T) {
	f := NewTrickFlags()
	f.MainAttackerHasPlayed = true

	if err := f.CanPressBito(RoleCoAttacker, 2, true); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("only the attacker presses bito with two players, got %v", err)
	}
	if err := f.CanPressBito(RoleAttacker, 2, true); err != nil {
		t.Fatalf("attacker bito with two players rejected: %v", err)
	}
}

func TestPressBitoFlipsPriority(t *testing.T) {
	f := NewTrickFlags()
	f.MainAttackerHasPlayed = true

	f = f.PressBito(RoleAttacker)
	if f.Priority != RoleCoAttacker {
		t.Fatalf("priority should flip to co-attacker, got %s", f.Priority)
	}
	if !f.AttackerBitoPressed || f.CoAttackerBitoPressed {
		t.Fatalf("bito flags wrong after attacker press: %+v", f)
	}

	// The co-attacker pressing back flips everything the other way.
	f = f.PressBito(RoleCoAttacker)
	if f.Priority != RoleAttacker {
		t.Fatalf("priority should flip back to attacker, got %s", f.Priority)
	}
	if f.AttackerBitoPressed || !f.CoAttackerBitoPressed {
		t.Fatalf("bito flags wrong after co-attacker press: %+v", f)
	}
}

func TestPressBitoBlockedWhenPending(t *testing.T) {
	f := NewTrickFlags()
	f.MainAttackerHasPlayed = true
	f = f.PressBito(RoleAttacker)

	if err := f.CanPressBito(RoleAttacker, 3, true); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("second bito with one pending should fail, got %v", err)
	}
}

func TestPressPassCompletion(t *testing.T) {
	f := NewTrickFlags()
	f.MainAttackerHasPlayed = true

	if err := f.CanPressPass(RoleAttacker, 2); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("pass with two players should fail, got %v", err)
	}

	f = f.PressPass(RoleAttacker)
	if f.Priority != RoleCoAttacker {
		t.Fatalf("priority should move to co-attacker after attacker pass, got %s", f.Priority)
	}
	if f.TrickComplete(3, true) {
		t.Fatal("trick complete with only one pass")
	}

	f = f.PressPass(RoleCoAttacker)
	if !f.TrickComplete(3, true) {
		t.Fatal("trick should complete once both attacking roles passed")
	}
	if f.TrickComplete(3, false) {
		t.Fatal("trick must not complete while unbeaten attacks remain")
	}
	if f.TrickComplete(2, true) {
		t.Fatal("two-player completion is signaled by bito, not by the pass check")
	}
}

func TestDoublePassRejected(t *testing.T) {
	f := NewTrickFlags()
	f = f.PressPass(RoleAttacker)
	if err := f.CanPressPass(RoleAttacker, 3); !errors.Is(err, ErrIllegalRole) {
		t.Fatalf("second pass by same role should fail, got %v", err)
	}
}
