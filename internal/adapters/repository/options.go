package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithPoolCapacity presizes internal maps for an expected pool size.
func WithPoolCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.byID = make(map[string]int, n)
			s.drafted = make(map[string]string, n)
		}
	}
}
