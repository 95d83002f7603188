package input

// Step repeats Frame for Ticks ticks.
type Step struct {
	Ticks int
	Frame Frame
}

// Script replays a fixed sequence of frames, then idles or starts over.
type Script struct {
	steps []Step
	loop  bool
	i     int
	n     int
}

func NewScript(loop bool, steps ...Step) *Script {
	return &Script{steps: steps, loop: loop}
}

func (s *Script) Next() Frame {
	wraps := 0
	for s.i < len(s.steps) {
		st := s.steps[s.i]
		if s.n < st.Ticks {
			s.n++
			return st.Frame
		}
		s.i++
		s.n = 0
		if s.i == len(s.steps) && s.loop {
			// a looping script of empty steps would spin forever
			if wraps++; wraps > 1 {
				break
			}
			s.i = 0
		}
	}
	return Frame{}
}

// Done reports whether a non-looping script has run out.
func (s *Script) Done() bool {
	return !s.loop && s.i >= len(s.steps)
}

// Draw returns the steps of pressing the bow on the first tick and holding
// it for the remaining ticks. base supplies the other inputs.
func Draw(ticks int, base Frame) []Step {
	if ticks <= 0 {
		return nil
	}
	press := base
	press.SecondaryPressed = true
	press.SecondaryHeld = true
	held := base
	held.SecondaryHeld = true
	steps := []Step{{Ticks: 1, Frame: press}}
	if ticks > 1 {
		steps = append(steps, Step{Ticks: ticks - 1, Frame: held})
	}
	return steps
}
