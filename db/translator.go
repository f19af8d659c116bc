package db

import "github.com/quintans/goBind/scan"

// Translator supplies what a statement needs to know about the server:
// how its SQL is quoted, how its text is encoded and how its types map.
type Translator interface {
	Dialect() scan.Dialect
	Encoding() *scan.Encoding

	// ServerType maps an SQL type to the server type used to send it. Zero if unknown.
	ServerType(sqlType SQLType) ServerType
	// ConciseType maps a server type back to an SQL type.
	ConciseType(serverType ServerType) SQLType
	ColumnSize(serverType ServerType) uint64
	DecimalDigits(serverType ServerType) int16
	Nullable(direction Direction) Nullability
}

// Preparer asks the server about the parameters of a statement that was not prepared yet.
type Preparer interface {
	PrepareParameters(stmt *Statement) error
}

// plainTranslator is used when a statement is created without a translator
type plainTranslator struct{}

var _ Translator = plainTranslator{}

func (plainTranslator) Dialect() scan.Dialect {
	return scan.DefaultDialect()
}

func (plainTranslator) Encoding() *scan.Encoding {
	return scan.DefaultEncoding()
}

func (plainTranslator) ServerType(SQLType) ServerType {
	return 0
}

func (plainTranslator) ConciseType(ServerType) SQLType {
	return SQLVarchar
}

func (plainTranslator) ColumnSize(ServerType) uint64 {
	return 0
}

func (plainTranslator) DecimalDigits(ServerType) int16 {
	return 0
}

func (plainTranslator) Nullable(Direction) Nullability {
	return NullableUnknown
}
