package recipe

// IngredientSet is an ordered ingredient collection with case-sensitive
// exact-match deduplication. Insertion order is preserved so the list the
// user built stays in the order they built it, whatever mix of typed and
// voice-extracted entries produced it.
type IngredientSet struct {
	items []string
	seen  map[string]struct{}
}

// NewIngredientSet creates a set seeded with the given ingredients
func NewIngredientSet(items ...string) *IngredientSet {
	s := &IngredientSet{
		seen: make(map[string]struct{}, len(items)),
	}
	s.AddAll(items)
	return s
}

// Add inserts one ingredient; duplicates are ignored
func (s *IngredientSet) Add(item string) {
	if item == "" {
		return
	}
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

// AddAll unions the given ingredients into the set
func (s *IngredientSet) AddAll(items []string) {
	for _, item := range items {
		s.Add(item)
	}
}

// Remove deletes an ingredient by exact match
func (s *IngredientSet) Remove(item string) {
	if _, ok := s.seen[item]; !ok {
		return
	}
	delete(s.seen, item)
	for i, existing := range s.items {
		if existing == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
}

// Len returns the number of ingredients
func (s *IngredientSet) Len() int {
	return len(s.items)
}

// Items returns the ingredients in insertion order
func (s *IngredientSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
