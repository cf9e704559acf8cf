package embedding

// Set is an ordered collection of embeddings keyed by name. Adding an
// embedding whose name is already present replaces the stored vector but
// keeps the original position.
type Set struct {
	names  []string
	byName map[string]Embedding
}

// NewSet builds a Set from embs in order.
func NewSet(embs ...Embedding) *Set {
	s := &Set{byName: make(map[string]Embedding, len(embs))}
	for _, e := range embs {
		s.Add(e)
	}
	return s
}

// Add inserts or replaces e.
func (s *Set) Add(e Embedding) {
	if s.byName == nil {
		s.byName = make(map[string]Embedding)
	}
	if _, ok := s.byName[e.Name]; !ok {
		s.names = append(s.names, e.Name)
	}
	s.byName[e.Name] = e
}

// Get returns the embedding stored under name.
func (s *Set) Get(name string) (Embedding, bool) {
	e, ok := s.byName[name]
	return e, ok
}

// Len returns the number of distinct names.
func (s *Set) Len() int { return len(s.names) }

// Names returns member names in order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Embeddings returns members in order.
func (s *Set) Embeddings() []Embedding {
	out := make([]Embedding, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}

// Matrix returns one row per member, in order. Rows alias the member vectors.
func (s *Set) Matrix() [][]float32 {
	out := make([][]float32, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name].Vector)
	}
	return out
}
