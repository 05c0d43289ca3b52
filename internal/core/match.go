package core

// professionKey is the composite lookup key for a profession.
type professionKey struct {
	mainGroup      string
	secondaryLabel string
}

// ProfessionIndex resolves talking point rows to professions inserted in
// the current run. When several professions share a key the first one
// added wins.
type ProfessionIndex struct {
	byPair  map[professionKey]int64
	byLabel map[string]int64
	size    int
}

// NewProfessionIndex returns an empty index.
func NewProfessionIndex() *ProfessionIndex {
	return &ProfessionIndex{
		byPair:  make(map[professionKey]int64),
		byLabel: make(map[string]int64),
	}
}

// Add records an inserted profession. p.ID must be the store-assigned id.
func (ix *ProfessionIndex) Add(p Profession) {
	ix.size++

	key := professionKey{mainGroup: p.MainGroup, secondaryLabel: p.SecondaryLabel}
	if _, ok := ix.byPair[key]; !ok {
		ix.byPair[key] = p.ID
	}
	if _, ok := ix.byLabel[p.SecondaryLabel]; !ok {
		ix.byLabel[p.SecondaryLabel] = p.ID
	}
}

// Resolve returns the profession id for a talking point row.
// A non-empty mainGroup requires both fields to match; otherwise only the
// secondary label is compared.
func (ix *ProfessionIndex) Resolve(mainGroup, secondaryLabel string) (int64, bool) {
	if mainGroup != "" {
		id, ok := ix.byPair[professionKey{mainGroup: mainGroup, secondaryLabel: secondaryLabel}]
		return id, ok
	}
	id, ok := ix.byLabel[secondaryLabel]
	return id, ok
}

// Len returns the number of professions added.
func (ix *ProfessionIndex) Len() int {
	return ix.size
}
