package rules

// Role represents a player's role within the current trick.
type Role string

const (
	RoleAttacker   Role = "attacker"
	RoleCoAttacker Role = "co-attacker"
	RoleDefender   Role = "defender"
	RoleObserver   Role = "observer"
)

// IsAttacking returns true for the two roles allowed to add attack cards.
func (r Role) IsAttacking() bool {
	return r == RoleAttacker || r == RoleCoAttacker
}

// AssignRoles determines the initial role of every player. order is the
// join order and firstIdx the position of the first player (holder of the
// globally lowest-power card at deal time). Relative to the first player:
// offset 0 is the attacker, offset 1 the defender, offset 2 the
// co-attacker when at least three players are present, and every further
// offset an observer.
func AssignRoles(order []string, firstIdx int) map[string]Role {
	n := len(order)
	roles := make(map[string]Role, n)
	for i, playerID := range order {
		offset := ((i - firstIdx) % n + n) % n
		switch {
		case offset == 0:
			roles[playerID] = RoleAttacker
		case offset == 1:
			roles[playerID] = RoleDefender
		case offset == 2 && n >= 3:
			roles[playerID] = RoleCoAttacker
		default:
			roles[playerID] = RoleObserver
		}
	}
	return roles
}

// HolderOf returns the player currently holding the given role, or "" if
// nobody does.
func HolderOf(roles map[string]Role, order []string, role Role) string {
	for _, playerID := range order {
		if roles[playerID] == role {
			return playerID
		}
	}
	return ""
}

// RotationFunc produces the role assignment for the next trick from the
// join order and the current assignment. Implementations never mutate
// their input.
type RotationFunc func(order []string, roles map[string]Role) map[string]Role

// TakeRotation selects the rotation applied after the defender takes the
// table, keyed by player count. The three player-count regimes have
// materially different rules, so each is its own named function.
func TakeRotation(playerCount int) RotationFunc {
	switch {
	case playerCount <= 2:
		return rotateTakeTwoPlayers
	case playerCount == 3:
		return rotateTakeThreePlayers
	default:
		return rotateTakeMultiplayer
	}
}

// BitoRotation selects the rotation applied after a successful defense.
func BitoRotation(playerCount int) RotationFunc {
	switch {
	case playerCount <= 2:
		return rotateBitoTwoPlayers
	case playerCount == 3:
		return rotateBitoThreePlayers
	default:
		return rotateBitoMultiplayer
	}
}

// rotateTakeTwoPlayers keeps roles unchanged: a defender who took the
// cards defends again.
func rotateTakeTwoPlayers(order []string, roles map[string]Role) map[string]Role {
	out := make(map[string]Role, len(roles))
	for playerID, role := range roles {
		out[playerID] = role
	}
	return out
}

// rotateTakeThreePlayers rotates backward by one seat: the co-attacker
// becomes the attacker, the attacker the defender, the defender the
// co-attacker.
func rotateTakeThreePlayers(order []string, roles map[string]Role) map[string]Role {
	out := make(map[string]Role, len(roles))
	for playerID, role := range roles {
		switch role {
		case RoleCoAttacker:
			out[playerID] = RoleAttacker
		case RoleAttacker:
			out[playerID] = RoleDefender
		case RoleDefender:
			out[playerID] = RoleCoAttacker
		default:
			out[playerID] = RoleObserver
		}
	}
	return out
}

// rotateTakeMultiplayer handles four or more players: the co-attacker
// becomes the attacker, the next player in join order (wrapping) the
// defender, the one after that the co-attacker, everyone else observes.
func rotateTakeMultiplayer(order []string, roles map[string]Role) map[string]Role {
	out := make(map[string]Role, len(order))
	for _, playerID := range order {
		out[playerID] = RoleObserver
	}
	coIdx := indexOf(order, HolderOf(roles, order, RoleCoAttacker))
	out[order[coIdx]] = RoleAttacker
	out[seatAfter(order, coIdx, 1)] = RoleDefender
	out[seatAfter(order, coIdx, 2)] = RoleCoAttacker
	return out
}

// rotateBitoTwoPlayers swaps attacker and defender.
func rotateBitoTwoPlayers(order []string, roles map[string]Role) map[string]Role {
	out := make(map[string]Role, len(roles))
	for playerID, role := range roles {
		switch role {
		case RoleAttacker:
			out[playerID] = RoleDefender
		case RoleDefender:
			out[playerID] = RoleAttacker
		default:
			out[playerID] = role
		}
	}
	return out
}

// rotateBitoThreePlayers advances every role by one: the defender who
// beat the trick attacks next.
func rotateBitoThreePlayers(order []string, roles map[string]Role) map[string]Role {
	out := make(map[string]Role, len(roles))
	for playerID, role := range roles {
		switch role {
		case RoleDefender:
			out[playerID] = RoleAttacker
		case RoleCoAttacker:
			out[playerID] = RoleDefender
		case RoleAttacker:
			out[playerID] = RoleCoAttacker
		default:
			out[playerID] = RoleObserver
		}
	}
	return out
}

// rotateBitoMultiplayer handles four or more players: the defender
// becomes the attacker, the co-attacker the defender, the player after
// the old co-attacker the new co-attacker; the old attacker sits out.
func rotateBitoMultiplayer(order []string, roles map[string]Role) map[string]Role {
	out := make(map[string]Role, len(order))
	for _, playerID := range order {
		out[playerID] = RoleObserver
	}
	coIdx := indexOf(order, HolderOf(roles, order, RoleCoAttacker))
	out[HolderOf(roles, order, RoleDefender)] = RoleAttacker
	out[order[coIdx]] = RoleDefender
	out[seatAfter(order, coIdx, 1)] = RoleCoAttacker
	return out
}

func indexOf(order []string, playerID string) int {
	for i, id := range order {
		if id == playerID {
			return i
		}
	}
	return 0
}

func seatAfter(order []string, idx, step int) string {
	return order[(idx+step)%len(order)]
}
