package track

// Store is the ordered, append-only path. It is not safe for concurrent use;
// its owner serializes access and hands out snapshots.
type Store struct {
	points []Position
	last   *Position
}

func NewStore() *Store { return &Store{} }

func (s *Store) Append(p Position) {
	s.points = append(s.points, p)
	s.last = &s.points[len(s.points)-1]
}

// Reset empties the path and clears the last known position.
func (s *Store) Reset() {
	s.points = nil
	s.last = nil
}

func (s *Store) Len() int { return len(s.points) }

// Last returns the most recently appended position.
func (s *Store) Last() (Position, bool) {
	if s.last == nil {
		return Position{}, false
	}
	return *s.last, true
}

// Snapshot returns a copy of the path.
func (s *Store) Snapshot() []Position {
	if len(s.points) == 0 {
		return nil
	}
	out := make([]Position, len(s.points))
	copy(out, s.points)
	return out
}
