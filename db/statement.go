package db

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/quintans/faults"
	"github.com/quintans/goBind/dbx"
	"github.com/quintans/goBind/scan"
	"github.com/quintans/toolkit/log"
)

var logger = log.LoggerFor("github.com/quintans/goBind/db")

type stmtConfig struct {
	preparer      Preparer
	tableOptions  []dbx.TableOption
	discardOutput bool
}

type StmtOption func(*stmtConfig)

// StmtWithPreparer sets who describes parameters of statements that were not prepared yet.
func StmtWithPreparer(preparer Preparer) StmtOption {
	return func(c *stmtConfig) {
		c.preparer = preparer
	}
}

// StmtWithSlotLimit caps every descriptor and staging table of the statement.
func StmtWithSlotLimit(limit int) StmtOption {
	return func(c *stmtConfig) {
		c.tableOptions = append(c.tableOptions, dbx.TableWithLimit(limit))
	}
}

func StmtWithDiscardOutputParams(discard bool) StmtOption {
	return func(c *stmtConfig) {
		c.discardOutput = discard
	}
}

// Statement owns the binding state of one statement handle.
// It is not safe for concurrent use.
type Statement struct {
	ID uuid.UUID

	translator Translator
	preparer   Preparer
	status     Status
	prepared   PrepareState

	text      []byte
	hasText   bool
	numParams int
	scanned   *scan.Result

	discardOutput bool

	apd     *AppParams
	ipd     *ImplParams
	ard     *ColumnBindings
	getData *dbx.StagingTable
	putData *dbx.StagingTable

	err *dbx.StatementFail
}

// NewStatement creates a statement with empty descriptor tables.
// A nil translator falls back to the default dialect and encoding.
func NewStatement(translator Translator, options ...StmtOption) *Statement {
	c := stmtConfig{}
	for _, o := range options {
		o(&c)
	}
	if translator == nil {
		translator = plainTranslator{}
	}

	s := &Statement{
		ID:            uuid.New(),
		translator:    translator,
		preparer:      c.preparer,
		status:        StatusAllocated,
		numParams:     -1,
		discardOutput: c.discardOutput,
	}
	s.apd = &AppParams{
		params:       dbx.NewTable[AppParam]("apd", nil, c.tableOptions...),
		paramsetSize: 1,
	}
	s.ipd = &ImplParams{
		params: dbx.NewTable[ImplParam]("ipd", nil, c.tableOptions...),
	}
	s.ard = &ColumnBindings{
		bindings: dbx.NewTable[ColumnBinding]("ard", resetColumn, c.tableOptions...),
	}
	s.getData = dbx.NewStagingTable("getdata", c.tableOptions...)
	s.putData = dbx.NewStagingTable("putdata", c.tableOptions...)

	logger.Debugf("%s: statement created", s.ID)
	return s
}

// Err returns the failure recorded by the last call, or nil.
func (s *Statement) Err() error {
	if s == nil || s.err == nil {
		return nil
	}
	return s.err
}

func (s *Statement) clearError() {
	s.err = nil
}

func (s *Statement) fail(code string, message string, fn string, cause error) error {
	f := dbx.NewStatementFail(code, message, fn).WithCause(cause)
	s.err = f
	if cause != nil {
		logger.Errorf("%s: %s: %s: %+v", s.ID, fn, message, cause)
	} else {
		logger.Errorf("%s: %s: %s", s.ID, fn, message)
	}
	return f
}

func invalidHandle(fn string) error {
	logger.Errorf("%s: invalid statement handle", fn)
	return dbx.NewStatementFail(dbx.FAULT_INVALID_HANDLE, "invalid statement handle", fn)
}

// SetStatementText sets the statement text, converted to the client encoding.
func (s *Statement) SetStatementText(text string) error {
	const fn = "SetStatementText"
	if s == nil {
		return invalidHandle(fn)
	}
	s.clearError()

	b, err := s.translator.Encoding().Encode(text)
	if err != nil {
		return s.fail(dbx.FAULT_PREPARE, "statement text is not representable in the client encoding", fn, faults.Wrap(err))
	}
	s.SetStatementBytes(b)
	return nil
}

// SetStatementBytes sets statement text already in the client encoding.
// The cached scan survives when the text is unchanged.
func (s *Statement) SetStatementBytes(text []byte) {
	if s == nil {
		return
	}
	if s.hasText && bytes.Equal(s.text, text) {
		return
	}
	s.text = append(s.text[:0], text...)
	s.hasText = true
	s.numParams = -1
	s.scanned = nil
	s.prepared = NotYetPrepared
	logger.Debugf("%s: statement text replaced", s.ID)
}

// Text returns the statement text in the client encoding.
func (s *Statement) Text() []byte {
	return s.text
}

func (s *Statement) SetStatus(status Status) {
	s.status = status
}

func (s *Statement) Status() Status {
	return s.status
}

// MarkPrepared records that the server already knows the statement parameters.
func (s *Statement) MarkPrepared() {
	s.prepared = Prepared
}

func (s *Statement) Prepared() PrepareState {
	return s.prepared
}

// MultiStatement reports whether the scanned text holds more than one statement.
func (s *Statement) MultiStatement() bool {
	return s.scanned != nil && s.scanned.MultiStatement
}

// ReturnValue reports whether the first placeholder is a procedure return value.
func (s *Statement) ReturnValue() bool {
	return s.scanned != nil && s.scanned.ReturnValue
}

func (s *Statement) SetDiscardOutputParams(discard bool) {
	s.discardOutput = discard
}

func (s *Statement) DiscardOutputParams() bool {
	return s.discardOutput
}

func (s *Statement) Translator() Translator {
	return s.translator
}

func (s *Statement) APD() *AppParams {
	return s.apd
}

func (s *Statement) IPD() *ImplParams {
	return s.ipd
}

func (s *Statement) ARD() *ColumnBindings {
	return s.ard
}

// GetData is the staging table of chunked column retrieval.
func (s *Statement) GetData() *dbx.StagingTable {
	return s.getData
}

// PutDataTable is the staging table of deferred parameter values.
func (s *Statement) PutDataTable() *dbx.StagingTable {
	return s.putData
}

// recycle drops a premature result so that the statement can be bound again.
func (s *Statement) recycle() {
	logger.Debugf("%s: recycling premature result", s.ID)
	s.getData.ResetAll()
	s.status = StatusReady
}

// Close releases every table of the statement.
// Application buffers are left untouched.
func (s *Statement) Close() error {
	if s == nil {
		return invalidHandle("Close")
	}
	s.apd.params.FreeAll()
	s.ipd.params.FreeAll()
	s.ard.bindings.FreeAll()
	s.ard.bookmark = nil
	s.getData.FreeAll()
	s.putData.FreeAll()
	s.text = nil
	s.hasText = false
	s.scanned = nil
	s.numParams = -1
	s.prepared = NotYetPrepared
	logger.Debugf("%s: statement closed", s.ID)
	return nil
}
