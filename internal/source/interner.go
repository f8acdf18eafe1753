package source

type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates strings and hands out dense IDs.
type Interner struct {
	byID  []string            // byID[0] = "" for NoStringID
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts the string and returns its ID; an already-known string
// returns its existing ID.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy so we do not pin the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for an ID, or "" for unknown IDs.
func (i *Interner) Lookup(id StringID) string {
	if int(id) >= len(i.byID) {
		return ""
	}
	return i.byID[id]
}

// Len returns the number of interned strings, including the empty sentinel.
func (i *Interner) Len() int {
	return len(i.byID)
}
