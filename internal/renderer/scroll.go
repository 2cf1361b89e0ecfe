package renderer

// ScrollState tracks which content line sits at the top of the viewport.
// All moves saturate at the content bounds.
type ScrollState struct {
	Top      int
	Viewport int
	Total    int
}

// MaxTop is the largest Top that still fills the viewport.
func (s ScrollState) MaxTop() int {
	return max(s.Total-s.Viewport, 0)
}

func (s *ScrollState) clamp() {
	s.Top = min(max(s.Top, 0), s.MaxTop())
}

// By moves Top by n lines and reports whether it changed.
func (s *ScrollState) By(n int) bool {
	old := s.Top
	s.Top += n
	s.clamp()
	return s.Top != old
}

// Page moves one viewport in direction dir.
func (s *ScrollState) Page(dir int) bool {
	step := max(s.Viewport-1, 1)
	if dir < 0 {
		step = -step
	}
	return s.By(step)
}

func (s *ScrollState) Home() bool { return s.By(-s.Top) }
func (s *ScrollState) End() bool  { return s.By(s.MaxTop() - s.Top) }

// SetViewport changes the viewport height and re-clamps Top.
func (s *ScrollState) SetViewport(h int) {
	s.Viewport = max(h, 0)
	s.clamp()
}

// SetTotal changes the content length and re-clamps Top.
func (s *ScrollState) SetTotal(n int) {
	s.Total = max(n, 0)
	s.clamp()
}

// AtEnd reports whether the last content line is visible.
func (s ScrollState) AtEnd() bool { return s.Top >= s.MaxTop() }
