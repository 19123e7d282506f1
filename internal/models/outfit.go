package models

// Outfit keys as they appear in monster scripts
const (
	KeyLookType   = "lookType"
	KeyLookHead   = "lookHead"
	KeyLookBody   = "lookBody"
	KeyLookLegs   = "lookLegs"
	KeyLookFeet   = "lookFeet"
	KeyLookAddons = "lookAddons"
	KeyLookTypeEx = "lookTypeEx"
)

// ZeroValue is the value an absent outfit key reads as.
const ZeroValue = "0"

// BodyPartKeys are the outfit keys that describe colors and addons of a creature look.
var BodyPartKeys = []string{KeyLookHead, KeyLookBody, KeyLookLegs, KeyLookFeet, KeyLookAddons}

// OutfitEntry is a single key = value line of an outfit block
type OutfitEntry struct {
	Key   string
	Value string
}

// Outfit is the set of numeric attributes declared in a monster's outfit block.
// Entries keep their source order; a key appears at most once.
type Outfit struct {
	entries []OutfitEntry
	index   map[string]int
}

// NewOutfit creates an empty Outfit
func NewOutfit() Outfit {
	return Outfit{index: make(map[string]int)}
}

// Add records key = value unless the key was already seen.
// Returns false when the key is a duplicate and the value was ignored.
func (o *Outfit) Add(key, value string) bool {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if _, exists := o.index[key]; exists {
		return false
	}
	o.index[key] = len(o.entries)
	o.entries = append(o.entries, OutfitEntry{Key: key, Value: value})
	return true
}

// Get returns the value for key and whether it was declared
func (o Outfit) Get(key string) (string, bool) {
	i, ok := o.index[key]
	if !ok {
		return "", false
	}
	return o.entries[i].Value, true
}

// Has reports whether key was declared
func (o Outfit) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// ValueOr returns the declared value for key, or ZeroValue when absent
func (o Outfit) ValueOr(key string) string {
	if v, ok := o.Get(key); ok {
		return v
	}
	return ZeroValue
}

// IsNonZero reports whether key is declared with a value other than "0".
// The comparison is on the literal string, so "00" counts as non-zero.
func (o Outfit) IsNonZero(key string) bool {
	v, ok := o.Get(key)
	return ok && v != ZeroValue
}

// Entries returns a copy of the entries in source order
func (o Outfit) Entries() []OutfitEntry {
	out := make([]OutfitEntry, len(o.entries))
	copy(out, o.entries)
	return out
}

// Len returns the number of distinct keys
func (o Outfit) Len() int {
	return len(o.entries)
}
