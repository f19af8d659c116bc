package db

// ParamCounts buckets the parameters of a statement by direction.
type ParamCounts struct {
	Input       int
	InputOutput int
	Output      int
}

func (c ParamCounts) Total() int {
	return c.Input + c.InputOutput + c.Output
}

// CountParameters classifies the described parameters by direction.
// Only the first min(NumParams, allocated) descriptors are visited.
// Unknown directions count as input.
func (s *Statement) CountParameters() ParamCounts {
	counts := ParamCounts{}
	if s == nil {
		return counts
	}

	n := s.numParams
	if allocated := s.ipd.Allocated(); allocated < n {
		n = allocated
	}
	for i := 0; i < n; i++ {
		switch s.ipd.At(i).Direction {
		case ParamOutput:
			counts.Output++
		case ParamInputOutput:
			counts.InputOutput++
		default:
			counts.Input++
		}
	}
	return counts
}
