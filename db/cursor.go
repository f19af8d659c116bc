package db

// ParameterCursor walks the parameters of a statement in order.
type ParameterCursor struct {
	stmt    *Statement
	current int
}

// Parameters returns a cursor positioned before the first parameter.
func (s *Statement) Parameters() *ParameterCursor {
	return &ParameterCursor{stmt: s, current: -1}
}

// Next advances to the next parameter and returns its 0-based index with both descriptors.
// The first call skips the return value slot, if the statement has one.
// Output only parameters are skipped while their output is discarded.
// A descriptor is nil once the index runs past its table.
func (c *ParameterCursor) Next() (int, *ImplParam, *AppParam) {
	s := c.stmt
	next := c.current + 1
	if c.current < 0 {
		next = 0
		if s.ReturnValue() {
			next = 1
		}
	}

	if s.discardOutput {
		for next < s.ipd.Allocated() && s.ipd.At(next).Direction == ParamOutput {
			next++
		}
	}
	c.current = next

	return next, s.ipd.At(next), s.apd.At(next)
}

// Reset positions the cursor before the first parameter again.
func (c *ParameterCursor) Reset() {
	c.current = -1
}
