package factions

import "fmt"

// NoCommonFactionError reports that a played card shares no faction with
// the set it must intersect. Both sets are carried for user-facing
// diagnostics; engine logic only cares that the intersection was empty.
type NoCommonFactionError struct {
	CardFactions Set
	Required     Set
}

func (e *NoCommonFactionError) Error() string {
	return fmt.Sprintf("card factions %s share no faction with required set %s",
		e.CardFactions, e.Required)
}

// Ledger tracks the faction state of the current trick: the active
// counter, the faction set of the attack chain, the scratch buffer that
// preserves defense-only contributions across narrowing, and the
// per-defense-card record of factions already spent on attaches.
type Ledger struct {
	Counter Counter     `json:"counter"`
	Active  Set         `json:"active"`
	Buffer  Counter     `json:"buffer"`
	Used    map[int]Set `json:"used"`
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		Counter: NewCounter(),
		Active:  NewSet(),
		Buffer:  NewCounter(),
		Used:    make(map[int]Set),
	}
}

// Clone creates a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	used := make(map[int]Set, len(l.Used))
	for id, set := range l.Used {
		used[id] = set.Clone()
	}
	return &Ledger{
		Counter: l.Counter.Clone(),
		Active:  l.Active.Clone(),
		Buffer:  l.Buffer.Clone(),
		Used:    used,
	}
}

// Reset clears all faction state. Called on every table-clearing event.
func (l *Ledger) Reset() {
	l.Counter = NewCounter()
	l.Active = NewSet()
	l.Buffer = NewCounter()
	l.Used = make(map[int]Set)
}

// RecordFirstAttack registers the first attack card of a trick: every
// faction of the card gets +1 and the active set becomes exactly the
// card's factions.
func (l *Ledger) RecordFirstAttack(card Set) {
	l.Counter.Adjust(card, +1)
	l.Active = card.Clone()
}

// RecordAttack registers a subsequent attack card played against the
// active attack chain. The active set narrows to the intersection of the
// card's factions with the current active set; counter entries
// contributed purely by defense cards are moved through the buffer so
// they survive the narrowing.
func (l *Ledger) RecordAttack(card Set) error {
	intersection := card.Intersect(l.Active)
	if len(intersection) == 0 {
		return &NoCommonFactionError{CardFactions: card, Required: l.Active.Clone()}
	}

	keep := intersection.Union(l.Active)
	l.bufferOutside(keep)
	l.Active = intersection
	l.mergeBuffer()
	return nil
}

// RecordDefense registers a defense card placed directly against an
// attack slot. With a full table the faction system is frozen and the
// card contributes nothing.
func (l *Ledger) RecordDefense(card Set, tableFull bool) {
	if tableFull {
		return
	}
	l.Counter.Adjust(card, +1)
}

// AvailableFactions returns the factions of a defense card that have not
// yet been spent unlocking an attach.
func (l *Ledger) AvailableFactions(defenseCardID int, card Set) Set {
	used, ok := l.Used[defenseCardID]
	if !ok {
		return card.Clone()
	}
	return card.Subtract(used)
}

// RecordAttach registers an attack card attached through an already
// placed defense card. The attach consumes the defense card's
// contribution: the counter drops by one for each of its factions and
// the factions spent on this attach are marked used so a later attach
// against the same physical card cannot reuse them. otherDefense is the
// union of factions carried by the other defense cards still on the
// table; a buffered faction survives only if it is in the unlocking
// intersection, not among the defense card's factions, or still carried
// by one of those other cards.
func (l *Ledger) RecordAttach(attack Set, defenseCardID int, defense Set, otherDefense Set) error {
	available := l.AvailableFactions(defenseCardID, defense)
	intersection := available.Intersect(attack)
	if len(intersection) == 0 {
		return &NoCommonFactionError{CardFactions: attack, Required: available}
	}

	keep := l.Active.Union(intersection)
	l.bufferOutside(keep)
	l.Counter.Adjust(defense, -1)

	used, ok := l.Used[defenseCardID]
	if !ok {
		used = NewSet()
		l.Used[defenseCardID] = used
	}
	for id := range intersection {
		used[id] = true
	}

	for id := range l.Buffer {
		if intersection.Contains(id) {
			continue
		}
		if !defense.Contains(id) {
			continue
		}
		if otherDefense.Contains(id) {
			continue
		}
		delete(l.Buffer, id)
	}
	l.mergeBuffer()
	return nil
}

// bufferOutside moves every counter entry whose faction is not in keep
// into the buffer, restricting the counter to the kept factions.
func (l *Ledger) bufferOutside(keep Set) {
	for id, n := range l.Counter {
		if keep.Contains(id) {
			continue
		}
		l.Buffer[id] += n
		delete(l.Counter, id)
	}
}

// mergeBuffer folds the buffer back into the counter and empties it.
func (l *Ledger) mergeBuffer() {
	l.Counter.Merge(l.Buffer)
	l.Buffer = NewCounter()
}
