package nfa

// SymbolClasses maps each input symbol to its equivalence class.
//
// Two symbols belong to the same class when no character class of any
// compiled pattern distinguishes them, so they can never cause
// different transitions in any DFA state. Keying DFA transition tables
// on class indices instead of raw symbols shrinks the tables from 259
// columns to typically well under 32.
//
// The anchor symbols are always singleton classes, whether or not any
// pattern mentions them.
type SymbolClasses struct {
	classes [SymbolCount]uint16
	count   int
}

// Get returns the equivalence class of the given symbol.
func (sc *SymbolClasses) Get(sym int) int {
	return int(sc.classes[sym])
}

// Count returns the number of equivalence classes.
func (sc *SymbolClasses) Count() int {
	return sc.count
}

// Representatives returns one symbol per class, in class order. Each
// representative can stand in for every symbol of its class when
// computing DFA transitions.
func (sc *SymbolClasses) Representatives() []int {
	reps := make([]int, 0, sc.count)
	seen := make([]bool, sc.count)
	for sym := 0; sym < SymbolCount; sym++ {
		class := sc.classes[sym]
		if !seen[class] {
			seen[class] = true
			reps = append(reps, sym)
		}
	}
	return reps
}

// ClassSet accumulates symbol-class boundaries while NFAs are built.
//
// Every symbol range [lo, hi] used by a transition marks lo-1 and hi as
// boundaries; the finished partition starts a new class after each
// boundary. One ClassSet is shared by all scanner states of a lexicon
// so their DFAs agree on the alphabet.
type ClassSet struct {
	// bits is a SymbolCount-bit bitset; bit i set means a class
	// boundary falls between symbol i and i+1.
	bits [5]uint64
}

// NewClassSet creates an empty ClassSet.
func NewClassSet() *ClassSet {
	return &ClassSet{}
}

// SetRange marks the symbol range [lo, hi] as distinct from its
// surroundings.
func (cs *ClassSet) SetRange(lo, hi int) {
	if lo > 0 {
		cs.setBit(lo - 1)
	}
	cs.setBit(hi)
}

func (cs *ClassSet) setBit(i int) {
	cs.bits[i/64] |= 1 << (i % 64)
}

func (cs *ClassSet) getBit(i int) bool {
	return cs.bits[i/64]&(1<<(i%64)) != 0
}

// Classes converts the accumulated boundaries into the final symbol
// partition. The anchor symbols are forced into singleton classes.
func (cs *ClassSet) Classes() SymbolClasses {
	// Boundaries below and between the anchors keep them singletons.
	cs.setBit(255)
	cs.setBit(SymbolBOL)
	cs.setBit(SymbolEOL)

	var sc SymbolClasses
	class := uint16(0)
	for sym := 0; sym < SymbolCount; sym++ {
		sc.classes[sym] = class
		if cs.getBit(sym) {
			class++
		}
	}
	sc.count = int(sc.classes[SymbolCount-1]) + 1
	return sc
}
