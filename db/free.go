package db

import "github.com/quintans/goBind/dbx"

// ResetParameter clears the binding of the 1-based parameter ipar.
// Parameters that were never allocated are ignored.
func (s *Statement) ResetParameter(ipar int) error {
	if s == nil {
		return invalidHandle("ResetParameter")
	}
	s.clearError()

	if ipar < 1 {
		return nil
	}
	i := ipar - 1
	s.apd.params.ResetSlot(i)
	s.ipd.params.ResetSlot(i)
	s.putData.ResetSlot(i)
	return nil
}

// FreeParams releases deferred parameter payloads and,
// with FreeParamsAll, the parameter tables as well.
func (s *Statement) FreeParams(option FreeOption) error {
	if s == nil {
		return invalidHandle("FreeParams")
	}
	s.clearError()

	for i := 0; i < s.putData.Allocated(); i++ {
		s.putData.ReleaseExec(i)
	}
	if option == FreeParamsAll {
		s.apd.params.FreeAll()
		s.ipd.params.FreeAll()
		s.putData.FreeAll()
	}
	logger.Debugf("%s: parameters freed, option=%d", s.ID, option)
	return nil
}

// ResetColumnBinding unbinds the 1-based column icol, or the bookmark for 0.
func (s *Statement) ResetColumnBinding(icol int) error {
	if s == nil {
		return invalidHandle("ResetColumnBinding")
	}
	s.clearError()

	if icol == 0 {
		if bm := s.ard.bookmark; bm != nil {
			bm.Buffer = dbx.Borrowed{}
			bm.Used = dbx.LenRef{}
		}
		return nil
	}
	s.ard.bindings.ResetSlot(icol - 1)
	return nil
}

// UnbindColumns unbinds every column and drops what was retrieved for them.
// With freeAll the tables are released too.
func (s *Statement) UnbindColumns(freeAll bool) error {
	if s == nil {
		return invalidHandle("UnbindColumns")
	}
	s.clearError()

	for i := 0; i < s.ard.Allocated(); i++ {
		s.ard.bindings.ResetSlot(i)
	}
	s.getData.ResetAll()
	if freeAll {
		s.ard.bindings.FreeAll()
		s.getData.FreeAll()
	}
	logger.Debugf("%s: columns unbound, free all=%t", s.ID, freeAll)
	return nil
}
