package db

// CType is the type of an application buffer.
type CType int16

const (
	CChar          CType = 1
	CNumeric       CType = 2
	CLong          CType = 4
	CShort         CType = 5
	CFloat         CType = 7
	CDouble        CType = 8
	CDefault       CType = 99
	CTypeDate      CType = 91
	CTypeTime      CType = 92
	CTypeTimestamp CType = 93
	CBinary        CType = -2
	CBit           CType = -7
	CWChar         CType = -8
	CGUID          CType = -11
	CULong         CType = -18
	CSBigInt       CType = -25

	CBookmark    = CULong
	CVarBookmark = CBinary
)

// SQLType is the SQL type a parameter is sent as.
type SQLType int16

const (
	SQLUnknown       SQLType = 0
	SQLChar          SQLType = 1
	SQLNumeric       SQLType = 2
	SQLDecimal       SQLType = 3
	SQLInteger       SQLType = 4
	SQLSmallint      SQLType = 5
	SQLFloat         SQLType = 6
	SQLReal          SQLType = 7
	SQLDouble        SQLType = 8
	SQLDate          SQLType = 9
	SQLTime          SQLType = 10
	SQLTimestamp     SQLType = 11
	SQLVarchar       SQLType = 12
	SQLTypeDate      SQLType = 91
	SQLTypeTime      SQLType = 92
	SQLTypeTimestamp SQLType = 93
	SQLLongVarchar   SQLType = -1
	SQLBinary        SQLType = -2
	SQLVarbinary     SQLType = -3
	SQLLongVarbinary SQLType = -4
	SQLBigint        SQLType = -5
	SQLTinyint       SQLType = -6
	SQLBit           SQLType = -7
	SQLWChar         SQLType = -8
	SQLWVarchar      SQLType = -9
	SQLWLongVarchar  SQLType = -10
	SQLGUID          SQLType = -11
)

// Direction tells whether a parameter carries a value in, out or both.
type Direction int16

const (
	ParamTypeUnknown Direction = 0
	ParamInput       Direction = 1
	ParamInputOutput Direction = 2
	ParamResultCol   Direction = 3
	ParamOutput      Direction = 4
	ParamReturnValue Direction = 5
)

// ServerType is the server side type tag, e.g. a PostgreSQL type oid.
type ServerType uint32

type Nullability int16

const (
	NoNulls         Nullability = 0
	Nullable        Nullability = 1
	NullableUnknown Nullability = 2
)

type Status int

const (
	StatusAllocated Status = iota
	StatusReady
	// a result was produced by a describe before execution
	StatusPremature
	StatusFinished
	StatusExecuting
)

type PrepareState int

const (
	NotYetPrepared PrepareState = iota
	Prepared
)

type FreeOption int

const (
	// FreeParamsAll releases the parameter tables themselves
	FreeParamsAll FreeOption = iota
	// FreeParamsDataAtExecOnly only releases deferred parameter payloads
	FreeParamsDataAtExecOnly
)
