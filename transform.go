package canvas

// TransformStack holds the current user transform and a stack of saved
// transforms for nested save/restore.
//
// The zero value is ready to use and starts at the identity.
// Every modifier right-composes onto the current transform, so the new
// transform applies in the local (object) space of the accumulated one:
//
//	current = current * t
type TransformStack struct {
	current Similarity
	init    bool
	stack   []Similarity
}

// Current returns the current transform.
func (ts *TransformStack) Current() Similarity {
	ts.ensure()
	return ts.current
}

// Depth returns the number of saved transforms.
func (ts *TransformStack) Depth() int {
	return len(ts.stack)
}

// Push saves the current transform. The stack is unbounded.
func (ts *TransformStack) Push() {
	ts.ensure()
	ts.stack = append(ts.stack, ts.current)
}

// Pop restores the most recently pushed transform.
// Popping an empty stack resets the current transform to the identity.
func (ts *TransformStack) Pop() {
	if len(ts.stack) == 0 {
		ts.current = IdentitySimilarity()
		ts.init = true
		return
	}
	last := len(ts.stack) - 1
	ts.current = ts.stack[last]
	ts.stack = ts.stack[:last]
	ts.init = true
}

// Save pushes the current transform and returns a function that restores it.
//
// The restore function truncates the stack back to the depth it had before
// Save, so unbalanced Push calls made in between (for instance by code that
// panicked halfway) are discarded as well. Calling restore more than once is
// a no-op.
//
//	restore := ts.Save()
//	defer restore()
func (ts *TransformStack) Save() (restore func()) {
	depth := len(ts.stack)
	ts.Push()
	saved := ts.current
	done := false
	return func() {
		if done {
			return
		}
		done = true
		if len(ts.stack) > depth {
			ts.stack = ts.stack[:depth]
		}
		ts.current = saved
	}
}

// Rotate right-composes a rotation (radians).
func (ts *TransformStack) Rotate(angle float64) {
	ts.Transform(Rotation(angle))
}

// Scale right-composes a uniform scale.
func (ts *TransformStack) Scale(factor float64) {
	ts.Transform(Scaling(factor))
}

// Translate right-composes a translation.
func (ts *TransformStack) Translate(dx, dy float64) {
	ts.Transform(Translation(dx, dy))
}

// Transform right-composes an arbitrary similarity.
func (ts *TransformStack) Transform(t Similarity) {
	ts.ensure()
	ts.current = ts.current.Mul(t)
}

// Reset sets the current transform to the identity. The stack is untouched.
func (ts *TransformStack) Reset() {
	ts.current = IdentitySimilarity()
	ts.init = true
}

func (ts *TransformStack) ensure() {
	if !ts.init {
		ts.current = IdentitySimilarity()
		ts.init = true
	}
}
