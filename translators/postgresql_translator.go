package translators

import (
	"github.com/lib/pq/oid"
	"github.com/quintans/faults"
	"github.com/quintans/goBind/db"
	"github.com/quintans/goBind/scan"
)

// default sizes of types without a declared length
const (
	pgMaxVarcharSize     = 255
	pgMaxLongVarcharSize = 8190
)

type PostgreSQLTranslator struct {
	*GenericTranslator
	standardConformingStrings bool
}

var _ db.Translator = &PostgreSQLTranslator{}

type pgConfig struct {
	standardConformingStrings bool
	encoding                  string
}

type PgOption func(*pgConfig)

// PgWithStandardConformingStrings tells whether backslash is an ordinary character in literals.
// Without it backslash escapes the next character of every literal.
func PgWithStandardConformingStrings(on bool) PgOption {
	return func(c *pgConfig) {
		c.standardConformingStrings = on
	}
}

// PgWithEncoding sets the client encoding, e.g. "UTF8" or "SJIS".
func PgWithEncoding(name string) PgOption {
	return func(c *pgConfig) {
		c.encoding = name
	}
}

func NewPostgreSQLTranslator(options ...PgOption) (*PostgreSQLTranslator, error) {
	c := pgConfig{
		standardConformingStrings: true,
		encoding:                  scan.UTF8,
	}
	for _, o := range options {
		o(&c)
	}

	enc, err := scan.LookupEncoding(c.encoding)
	if err != nil {
		return nil, faults.Wrap(err)
	}

	dialect := scan.DefaultDialect()
	if !c.standardConformingStrings {
		dialect.EscapeChar = '\\'
	}

	this := new(PostgreSQLTranslator)
	this.GenericTranslator = new(GenericTranslator)
	this.Init(dialect, enc)
	this.standardConformingStrings = c.standardConformingStrings
	// every parameter can be sent as null
	this.SetNullable(db.Nullable)
	registerPgTypes(this.GenericTranslator)
	return this, nil
}

func (p *PostgreSQLTranslator) StandardConformingStrings() bool {
	return p.standardConformingStrings
}

func pgType(o oid.Oid) db.ServerType {
	return db.ServerType(o)
}

func registerPgTypes(g *GenericTranslator) {
	g.RegisterType(TypeInfo{pgType(oid.T_int2), db.SQLSmallint, 5, 0}, db.SQLSmallint, db.SQLTinyint)
	g.RegisterType(TypeInfo{pgType(oid.T_int4), db.SQLInteger, 10, 0}, db.SQLInteger)
	g.RegisterType(TypeInfo{pgType(oid.T_int8), db.SQLBigint, 19, 0}, db.SQLBigint)
	g.RegisterType(TypeInfo{pgType(oid.T_numeric), db.SQLNumeric, 28, 6}, db.SQLNumeric, db.SQLDecimal)
	g.RegisterType(TypeInfo{pgType(oid.T_float4), db.SQLReal, 7, 0}, db.SQLReal)
	g.RegisterType(TypeInfo{pgType(oid.T_float8), db.SQLDouble, 15, 0}, db.SQLDouble, db.SQLFloat)
	g.RegisterType(TypeInfo{pgType(oid.T_bool), db.SQLBit, 1, 0}, db.SQLBit)
	g.RegisterType(TypeInfo{pgType(oid.T_bpchar), db.SQLChar, pgMaxVarcharSize, 0}, db.SQLChar, db.SQLWChar)
	g.RegisterType(TypeInfo{pgType(oid.T_varchar), db.SQLVarchar, pgMaxVarcharSize, 0}, db.SQLVarchar, db.SQLWVarchar)
	g.RegisterType(TypeInfo{pgType(oid.T_text), db.SQLLongVarchar, pgMaxLongVarcharSize, 0}, db.SQLLongVarchar, db.SQLWLongVarchar)
	g.RegisterType(TypeInfo{pgType(oid.T_bytea), db.SQLVarbinary, pgMaxLongVarcharSize, 0},
		db.SQLBinary, db.SQLVarbinary, db.SQLLongVarbinary)
	g.RegisterType(TypeInfo{pgType(oid.T_date), db.SQLTypeDate, 10, 0}, db.SQLTypeDate, db.SQLDate)
	g.RegisterType(TypeInfo{pgType(oid.T_time), db.SQLTypeTime, 8, 0}, db.SQLTypeTime, db.SQLTime)
	g.RegisterType(TypeInfo{pgType(oid.T_timestamp), db.SQLTypeTimestamp, 26, 6}, db.SQLTypeTimestamp, db.SQLTimestamp)
	g.RegisterType(TypeInfo{pgType(oid.T_timestamptz), db.SQLTypeTimestamp, 26, 6})
	g.RegisterType(TypeInfo{pgType(oid.T_uuid), db.SQLGUID, 37, 0}, db.SQLGUID)
}
