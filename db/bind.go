package db

import (
	"github.com/quintans/faults"
	"github.com/quintans/goBind/dbx"
	"github.com/quintans/goBind/scan"
)

// ParamDescription is what DescribeParameter knows about a parameter marker.
type ParamDescription struct {
	SQLType       SQLType
	ColumnSize    uint64
	DecimalDigits int16
	Nullable      Nullability
}

// BindParameter binds an application buffer to the 1-based parameter ipar.
// The parameter tables grow to cover ipar; bindings of other parameters are kept.
func (s *Statement) BindParameter(
	ipar int,
	direction Direction,
	cType CType,
	sqlType SQLType,
	columnSize uint64,
	decimalDigits int16,
	buffer dbx.Borrowed,
	bufLen int64,
	used dbx.LenRef,
) error {
	const fn = "BindParameter"
	if s == nil {
		return invalidHandle(fn)
	}
	s.clearError()

	if ipar < 1 || ipar > dbx.DefaultSlotLimit {
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "invalid parameter number", fn, nil)
	}

	if err := s.growParams(ipar); err != nil {
		return s.fail(dbx.FAULT_NO_MEMORY, "could not allocate memory for parameter bindings", fn, err)
	}

	// zero based from here
	i := ipar - 1
	apd := s.apd.At(i)
	ipd := s.ipd.At(i)

	apd.Buffer = buffer
	apd.BufLen = bufLen
	apd.CType = cType

	ipd.SQLType = sqlType
	ipd.Direction = direction
	ipd.ColumnSize = columnSize
	ipd.DecimalDigits = decimalDigits
	ipd.Precision = 0
	ipd.Scale = 0
	if ipd.ServerType == 0 {
		ipd.ServerType = s.translator.ServerType(sqlType)
	}

	switch cType {
	case CNumeric:
		if columnSize > 0 {
			ipd.Precision = int16(columnSize)
		}
		if decimalDigits > 0 {
			ipd.Scale = decimalDigits
		}
	case CTypeTimestamp:
		if decimalDigits > 0 {
			ipd.Precision = decimalDigits
		}
	}
	apd.Precision = ipd.Precision
	apd.Scale = ipd.Scale

	// a rebind drops the pieces supplied for the previous binding
	s.putData.ReleaseExec(i)

	if s.apd.bindOffset != nil {
		used = used.Shift(*s.apd.bindOffset)
	}
	apd.Used = used

	if s.status == StatusPremature {
		s.recycle()
	}

	logger.Debugf("%s: %s: ipar=%d, direction=%d, ctype=%d, sqltype=%d, size=%d, digits=%d",
		s.ID, fn, ipar, direction, cType, sqlType, columnSize, decimalDigits)
	return nil
}

// growParams grows every parameter table to n slots.
// Every table is attempted so that a failure only empties the table that failed.
func (s *Statement) growParams(n int) error {
	var first error
	for _, grow := range []func(int) error{
		s.apd.params.EnsureCapacity,
		s.ipd.params.EnsureCapacity,
		s.putData.EnsureCapacity,
	} {
		if err := grow(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// BindColumn binds an application buffer to the 1-based result column icol.
// Column 0 is the bookmark and only accepts bookmark types.
// A nil buffer unbinds the column.
func (s *Statement) BindColumn(icol int, cType CType, buffer dbx.Borrowed, bufLen int64, used dbx.LenRef) error {
	const fn = "BindColumn"
	if s == nil {
		return invalidHandle(fn)
	}
	s.clearError()

	if s.status == StatusExecuting {
		return s.fail(dbx.FAULT_SEQUENCE, "can't bind columns while statement is still executing", fn, nil)
	}
	if icol < 0 || icol > dbx.DefaultSlotLimit {
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "invalid column number", fn, nil)
	}

	if icol == 0 {
		return s.bindBookmark(fn, cType, buffer, bufLen, used)
	}

	if err := s.ard.bindings.EnsureCapacity(icol); err != nil {
		return s.fail(dbx.FAULT_NO_MEMORY, "could not allocate memory for bindings", fn, err)
	}
	if err := s.getData.EnsureCapacity(icol); err != nil {
		return s.fail(dbx.FAULT_NO_MEMORY, "could not allocate memory for column data", fn, err)
	}

	i := icol - 1
	s.getData.Rewind(i)

	if buffer.IsNil() {
		s.ard.bindings.ResetSlot(i)
		s.getData.ResetSlot(i)
		logger.Debugf("%s: %s: unbound column %d", s.ID, fn, icol)
		return nil
	}

	b := s.ard.At(i)
	b.Buffer = buffer
	b.BufLen = bufLen
	b.Used = used
	b.CType = cType
	b.Precision = 0
	if cType == CNumeric {
		b.Precision = 32
	}
	b.Scale = 0

	logger.Debugf("%s: %s: icol=%d, ctype=%d, buflen=%d", s.ID, fn, icol, cType, bufLen)
	return nil
}

func (s *Statement) bindBookmark(fn string, cType CType, buffer dbx.Borrowed, bufLen int64, used dbx.LenRef) error {
	if buffer.IsNil() {
		if bm := s.ard.bookmark; bm != nil {
			bm.Buffer = dbx.Borrowed{}
			bm.Used = dbx.LenRef{}
		}
		return nil
	}

	switch cType {
	case CBookmark, CVarBookmark:
	default:
		return s.fail(dbx.FAULT_OUT_OF_RANGE, "bind column 0 is not of a bookmark type", fn, nil)
	}

	bm := s.ard.allocBookmark()
	bm.Buffer = buffer
	bm.BufLen = bufLen
	bm.Used = used
	bm.CType = cType
	logger.Debugf("%s: %s: bookmark bound, ctype=%d", s.ID, fn, cType)
	return nil
}

// DescribeParameter reports what is known about the 1-based parameter ipar.
// The server can't describe bare markers so the answer comes from the binding,
// then from the server type and finally defaults to varchar.
func (s *Statement) DescribeParameter(ipar int) (ParamDescription, error) {
	const fn = "DescribeParameter"
	if s == nil {
		return ParamDescription{}, invalidHandle(fn)
	}
	s.clearError()

	n := s.numParams
	if n < 0 {
		var err error
		if n, err = s.countParams(fn); err != nil {
			return ParamDescription{}, err
		}
	}
	if ipar < 1 || ipar > n {
		return ParamDescription{}, s.fail(dbx.FAULT_OUT_OF_RANGE, "invalid parameter number", fn, nil)
	}
	if err := s.ipd.params.EnsureCapacity(n); err != nil {
		return ParamDescription{}, s.fail(dbx.FAULT_NO_MEMORY, "could not allocate memory for parameter descriptions", fn, err)
	}

	if s.prepared == NotYetPrepared && s.preparer != nil {
		if err := s.preparer.PrepareParameters(s); err != nil {
			return ParamDescription{}, s.fail(dbx.FAULT_PREPARE, "unable to prepare parameters", fn, faults.Wrap(err))
		}
		s.prepared = Prepared
	}

	p := s.ipd.At(ipar - 1)
	d := ParamDescription{}
	switch {
	case p.SQLType != 0:
		d.SQLType = p.SQLType
		d.ColumnSize = p.ColumnSize
		d.DecimalDigits = p.DecimalDigits
	case p.ServerType != 0:
		d.SQLType = s.translator.ConciseType(p.ServerType)
		d.DecimalDigits = s.translator.DecimalDigits(p.ServerType)
	default:
		d.SQLType = SQLVarchar
	}
	if d.ColumnSize == 0 && p.ServerType != 0 {
		d.ColumnSize = s.translator.ColumnSize(p.ServerType)
	}
	d.Nullable = s.translator.Nullable(p.Direction)

	logger.Debugf("%s: %s: ipar=%d, %+v", s.ID, fn, ipar, d)
	return d, nil
}

// SetParameterArraySize sets how many rows of parameters are bound as arrays
// and where the number of processed rows is reported.
func (s *Statement) SetParameterArraySize(rows uint64, processed *uint64) error {
	if s == nil {
		return invalidHandle("SetParameterArraySize")
	}
	s.clearError()
	s.apd.paramsetSize = rows
	s.ipd.processed = processed
	logger.Debugf("%s: paramset size %d", s.ID, rows)
	return nil
}

// SetParameterBindOffset sets the element offset applied to the length indicators bound afterwards.
func (s *Statement) SetParameterBindOffset(offset *int) error {
	if s == nil {
		return invalidHandle("SetParameterBindOffset")
	}
	s.clearError()
	s.apd.bindOffset = offset
	return nil
}

// NumParams returns the number of parameter markers of the statement text.
// The text is scanned once and the result is kept until the text changes.
func (s *Statement) NumParams() (int, error) {
	const fn = "NumParams"
	if s == nil {
		return 0, invalidHandle(fn)
	}
	s.clearError()

	if s.numParams >= 0 {
		return s.numParams, nil
	}
	return s.countParams(fn)
}

func (s *Statement) countParams(fn string) (int, error) {
	if !s.hasText {
		return 0, s.fail(dbx.FAULT_SEQUENCE, "called with no statement ready", fn, nil)
	}

	r := scan.Scan(s.text, s.translator.Encoding(), s.translator.Dialect())
	s.scanned = &r
	s.numParams = r.Count
	logger.Debugf("%s: %s: count=%d, multi=%t, return=%t", s.ID, fn, r.Count, r.MultiStatement, r.ReturnValue)
	return r.Count, nil
}
