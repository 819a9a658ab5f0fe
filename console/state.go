package console

// ModifierStack tracks active modifiers across nested drawing scopes.
//
// Each frame is a set of modifiers kept in activation order. The base
// frame always exists, so the zero value is ready to use. Backends embed
// ModifierStack to provide Set, PushState and PopState.
//
// ModifierStack is not safe for concurrent use.
type ModifierStack struct {
	// frames[0] is the base frame; nil means only an empty base frame
	frames [][]Modifier
}

func (s *ModifierStack) ensureBase() {
	if len(s.frames) == 0 {
		s.frames = append(s.frames, nil)
	}
}

// Set activates m in the top frame. Re-setting an active modifier keeps
// the set unchanged but makes m the most recent, so it overrides colors
// set after it.
func (s *ModifierStack) Set(m Modifier) {
	s.ensureBase()
	top := len(s.frames) - 1
	frame := s.frames[top]
	for i, active := range frame {
		if active == m {
			copy(frame[i:], frame[i+1:])
			frame[len(frame)-1] = m
			return
		}
	}
	s.frames[top] = append(frame, m)
}

// PushState opens a frame inheriting the current active set
func (s *ModifierStack) PushState() {
	s.ensureBase()
	cur := s.frames[len(s.frames)-1]
	frame := make([]Modifier, len(cur), len(cur)+2)
	copy(frame, cur)
	s.frames = append(s.frames, frame)
}

// PopState discards the top frame. Popping the base frame returns
// ErrStateUnderflow and leaves the stack untouched.
func (s *ModifierStack) PopState() error {
	if len(s.frames) <= 1 {
		return ErrStateUnderflow
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Depth returns the number of frames, base included
func (s *ModifierStack) Depth() int {
	if len(s.frames) == 0 {
		return 1
	}
	return len(s.frames)
}

// Active returns a copy of the effective modifier set in activation order
func (s *ModifierStack) Active() []Modifier {
	if len(s.frames) == 0 {
		return nil
	}
	top := s.frames[len(s.frames)-1]
	if len(top) == 0 {
		return nil
	}
	out := make([]Modifier, len(top))
	copy(out, top)
	return out
}

// IsActive reports whether m is in the effective set
func (s *ModifierStack) IsActive(m Modifier) bool {
	if len(s.frames) == 0 {
		return false
	}
	for _, active := range s.frames[len(s.frames)-1] {
		if active == m {
			return true
		}
	}
	return false
}

// Style resolves the effective set
func (s *ModifierStack) Style() Style {
	if len(s.frames) == 0 {
		return Style{}
	}
	return Resolve(s.frames[len(s.frames)-1])
}

// Reset drops every frame above the base and empties the base
func (s *ModifierStack) Reset() {
	s.frames = s.frames[:0]
}
