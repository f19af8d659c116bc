package db

import (
	"github.com/quintans/goBind/dbx"
	tk "github.com/quintans/toolkit"
)

// AppParam describes the application buffer bound to a parameter.
type AppParam struct {
	Buffer    dbx.Borrowed
	BufLen    int64
	Used      dbx.LenRef
	CType     CType
	Precision int16
	Scale     int16
}

// DataAtExec is the length indicator value of a parameter supplied after submission.
const DataAtExec int64 = -2

// LenDataAtExecOffset is the bound below which an indicator also asks for data at execution.
const LenDataAtExecOffset int64 = -100

// DeferredAt reports whether the value of the given row is supplied in pieces after submission.
// The indicator is read when asked, never at bind time.
func (p *AppParam) DeferredAt(row int) bool {
	v, ok := p.Used.Get(row)
	if !ok {
		return false
	}
	return v == DataAtExec || v <= LenDataAtExecOffset
}

func (p *AppParam) String() string {
	var sb tk.StrBuffer
	sb.Add("{ctype=", p.CType, ", buflen=", p.BufLen)
	sb.Add(", bound=", !p.Buffer.IsNil(), ", precision=", p.Precision, ", scale=", p.Scale, "}")
	return sb.String()
}

// ImplParam describes how a parameter is sent to the server.
type ImplParam struct {
	Name          string
	Direction     Direction
	SQLType       SQLType
	ServerType    ServerType
	ColumnSize    uint64
	DecimalDigits int16
	Precision     int16
	Scale         int16
}

func (p *ImplParam) String() string {
	var sb tk.StrBuffer
	sb.Add("{name=", p.Name, ", direction=", p.Direction, ", sqltype=", p.SQLType, ", servertype=", p.ServerType)
	sb.Add(", size=", p.ColumnSize, ", digits=", p.DecimalDigits, "}")
	return sb.String()
}

// ColumnBinding describes the application buffer bound to a result column.
type ColumnBinding struct {
	Buffer    dbx.Borrowed
	BufLen    int64
	Used      dbx.LenRef
	CType     CType
	Precision int16
	Scale     int16
}

func (c *ColumnBinding) Bound() bool {
	return !c.Buffer.IsNil()
}

func (c *ColumnBinding) String() string {
	return tk.NewStrBuffer("{ctype=", c.CType, ", buflen=", c.BufLen, ", bound=", c.Bound(), "}").String()
}

// BookmarkBinding is the buffer bound to column 0.
type BookmarkBinding struct {
	Buffer dbx.Borrowed
	BufLen int64
	Used   dbx.LenRef
	CType  CType
}

func resetColumn(c *ColumnBinding) {
	*c = ColumnBinding{CType: CChar}
}

// AppParams is the application parameter descriptor of a statement.
type AppParams struct {
	params       *dbx.Table[AppParam]
	paramsetSize uint64
	bindOffset   *int
}

func (a *AppParams) Allocated() int {
	return a.params.Allocated()
}

// At returns the 0-based parameter slot i, or nil.
func (a *AppParams) At(i int) *AppParam {
	return a.params.At(i)
}

// ParamsetSize is the number of parameter rows bound in arrays.
func (a *AppParams) ParamsetSize() uint64 {
	return a.paramsetSize
}

// ImplParams is the implementation parameter descriptor of a statement.
type ImplParams struct {
	params    *dbx.Table[ImplParam]
	processed *uint64
}

func (p *ImplParams) Allocated() int {
	return p.params.Allocated()
}

func (p *ImplParams) At(i int) *ImplParam {
	return p.params.At(i)
}

// ReportProcessed writes the processed row count to the application counter, if any.
func (p *ImplParams) ReportProcessed(n uint64) {
	if p.processed != nil {
		*p.processed = n
	}
}

// ColumnBindings is the application row descriptor of a statement.
// The bookmark lives apart from the indexed columns.
type ColumnBindings struct {
	bindings *dbx.Table[ColumnBinding]
	bookmark *BookmarkBinding
}

func (c *ColumnBindings) Allocated() int {
	return c.bindings.Allocated()
}

// At returns the 0-based column slot i, or nil.
func (c *ColumnBindings) At(i int) *ColumnBinding {
	return c.bindings.At(i)
}

// Bookmark returns the bookmark binding or nil if it was never bound.
func (c *ColumnBindings) Bookmark() *BookmarkBinding {
	return c.bookmark
}

func (c *ColumnBindings) allocBookmark() *BookmarkBinding {
	if c.bookmark == nil {
		c.bookmark = new(BookmarkBinding)
	}
	return c.bookmark
}
