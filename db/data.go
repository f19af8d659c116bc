package db

import "github.com/quintans/goBind/dbx"

// PutData appends a piece of the value of the 1-based parameter ipar,
// supplied after the statement was submitted.
func (s *Statement) PutData(ipar int, chunk []byte) error {
	const fn = "PutData"
	if s == nil {
		return invalidHandle(fn)
	}
	s.clearError()

	if ipar < 1 || ipar > s.putData.Allocated() {
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "parameter is not bound", fn, nil)
	}
	if err := s.putData.AppendExec(ipar-1, chunk); err != nil {
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "parameter is not bound", fn, err)
	}
	return nil
}

// ParameterData returns what was supplied so far for the 1-based parameter ipar.
func (s *Statement) ParameterData(ipar int) ([]byte, error) {
	const fn = "ParameterData"
	if s == nil {
		return nil, invalidHandle(fn)
	}
	s.clearError()

	if ipar < 1 || ipar > s.putData.Allocated() {
		return nil, s.fail(dbx.FAULT_OUT_OF_RANGE, "parameter is not bound", fn, nil)
	}
	return s.putData.At(ipar - 1).Exec(), nil
}

func columnSlot(icol int) int {
	if icol == 0 {
		return dbx.BookmarkSlot
	}
	return icol - 1
}

// AccumulateColumnData appends a retrieved piece of the value of column icol
// and records how much of it is still to come. Column 0 is the bookmark.
func (s *Statement) AccumulateColumnData(icol int, chunk []byte, remaining int64) error {
	const fn = "AccumulateColumnData"
	if s == nil {
		return invalidHandle(fn)
	}
	s.clearError()

	if icol < 0 || icol > s.getData.Allocated() {
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "invalid column number", fn, nil)
	}
	slot := columnSlot(icol)
	if err := s.getData.Append(slot, chunk); err != nil {
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "invalid column number", fn, err)
	}
	if err := s.getData.SetRemaining(slot, remaining); err != nil {
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "invalid column number", fn, err)
	}
	return nil
}

// ColumnData returns the bytes accumulated for column icol and what is still to come,
// dbx.NotStarted if retrieval did not begin.
func (s *Statement) ColumnData(icol int) ([]byte, int64, error) {
	const fn = "ColumnData"
	if s == nil {
		return nil, 0, invalidHandle(fn)
	}
	s.clearError()

	if icol < 0 {
		return nil, 0, s.fail(dbx.FAULT_OUT_OF_RANGE, "invalid column number", fn, nil)
	}
	b := s.getData.At(columnSlot(icol))
	if b == nil {
		return nil, 0, s.fail(dbx.FAULT_OUT_OF_RANGE, "invalid column number", fn, nil)
	}
	return b.Data(), b.Remaining(), nil
}

// ResizeColumnData fits the column staging table to a result of n columns.
// Without shrink extra slots are kept.
func (s *Statement) ResizeColumnData(n int, shrink bool) error {
	return s.resize("ResizeColumnData", s.getData, n, shrink)
}

// ResizePutData fits the deferred parameter staging table to n parameters.
func (s *Statement) ResizePutData(n int, shrink bool) error {
	return s.resize("ResizePutData", s.putData, n, shrink)
}

func (s *Statement) resize(fn string, t *dbx.StagingTable, n int, shrink bool) error {
	if s == nil {
		return invalidHandle(fn)
	}
	s.clearError()

	if n < 0 {
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "negative size", fn, nil)
	}
	if n > t.Allocated() {
		if err := t.EnsureCapacity(n); err != nil {
			return s.fail(dbx.FAULT_NO_MEMORY, "could not allocate memory for "+t.Name(), fn, err)
		}
		return nil
	}
	if shrink {
		t.ShrinkTo(n)
	}
	return nil
}
