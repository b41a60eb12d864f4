package booking

import "strings"

// RunState is the mutable state of one acquisition run: the blocklist, the
// affinity hint and the login flag. It is owned by a single worker goroutine,
// so there is no locking here; concurrent readers get copies through the
// worker's snapshots, never this struct.
type RunState struct {
	blocked    map[string]struct{}
	blockOrder []string
	affinity   string
	loggedIn   bool
}

func NewRunState() *RunState {
	return &RunState{
		blocked: make(map[string]struct{}),
	}
}

// Block adds a keyword to the blocklist for the remainder of the run. The
// blocklist only grows, there is no unblock.
func (s *RunState) Block(keyword string) {
	key := strings.ToLower(keyword)

	if _, ok := s.blocked[key]; ok {
		return
	}

	s.blocked[key] = struct{}{}
	s.blockOrder = append(s.blockOrder, keyword)
}

func (s *RunState) Blocked(keyword string) bool {
	_, ok := s.blocked[strings.ToLower(keyword)]
	return ok
}

// Blocklist returns the blocked keywords in the order they were learned.
func (s *RunState) Blocklist() []string {
	out := make([]string, len(s.blockOrder))
	copy(out, s.blockOrder)

	return out
}

// SetAffinityHint remembers the most recently confirmed-available keyword.
// The hint only reorders future candidate ranking, it never skips probing.
func (s *RunState) SetAffinityHint(keyword string) {
	s.affinity = keyword
}

func (s *RunState) AffinityHint() string {
	return s.affinity
}

func (s *RunState) MarkLoggedIn() {
	s.loggedIn = true
}

func (s *RunState) LoggedIn() bool {
	return s.loggedIn
}
