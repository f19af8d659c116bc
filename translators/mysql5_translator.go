package translators

import (
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/quintans/faults"
	"github.com/quintans/goBind/db"
	"github.com/quintans/goBind/scan"
)

// MySQL field type codes of the client protocol.
// Decimal is sent as NEWDECIMAL since a zero server type means unknown.
const (
	myTypeTiny       db.ServerType = 1
	myTypeShort      db.ServerType = 2
	myTypeLong       db.ServerType = 3
	myTypeFloat      db.ServerType = 4
	myTypeDouble     db.ServerType = 5
	myTypeLongLong   db.ServerType = 8
	myTypeDate       db.ServerType = 10
	myTypeTime       db.ServerType = 11
	myTypeDateTime   db.ServerType = 12
	myTypeBit        db.ServerType = 16
	myTypeNewDecimal db.ServerType = 246
	myTypeBlob       db.ServerType = 252
	myTypeVarString  db.ServerType = 253
	myTypeString     db.ServerType = 254
)

const (
	sqlModeAnsiQuotes         = "ANSI_QUOTES"
	sqlModeNoBackslashEscapes = "NO_BACKSLASH_ESCAPES"
)

type MySQL5Translator struct {
	*GenericTranslator
	sqlMode []string
}

var _ db.Translator = &MySQL5Translator{}

// NewMySQL5Translator creates a translator for the default sql_mode and utf8mb4.
func NewMySQL5Translator() *MySQL5Translator {
	this := new(MySQL5Translator)
	this.GenericTranslator = new(GenericTranslator)
	this.Init(mysqlDialect(nil), scan.DefaultEncoding())
	this.SetNullable(db.Nullable)
	registerMySQLTypes(this.GenericTranslator)
	return this
}

// NewMySQL5TranslatorFromDSN creates a translator matching the session a DSN opens:
// sql_mode decides how literals and identifiers are quoted,
// charset (or else the collation) decides the client encoding.
func NewMySQL5TranslatorFromDSN(dsn string) (*MySQL5Translator, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, faults.Wrap(err)
	}

	this := NewMySQL5Translator()
	if mode, ok := cfg.Params["sql_mode"]; ok {
		this.sqlMode = parseSQLMode(mode)
		this.SetDialect(mysqlDialect(this.sqlMode))
	}

	charset := ""
	if cs, ok := cfg.Params["charset"]; ok {
		// the driver tries each charset of the list in turn
		charset = strings.Split(cs, ",")[0]
	} else if cfg.Collation != "" {
		charset = strings.SplitN(cfg.Collation, "_", 2)[0]
	}
	if charset != "" {
		if err := this.SetEncodingName(charset); err != nil {
			return nil, faults.Wrap(err)
		}
	}

	logger.Debugf("MySQL translator for %s@%s: sql_mode=%v, encoding=%s", cfg.User, cfg.Addr, this.sqlMode, this.Encoding().Name())
	return this, nil
}

// SQLMode returns the sql_mode flags the translator was configured with.
func (m *MySQL5Translator) SQLMode() []string {
	return m.sqlMode
}

func parseSQLMode(mode string) []string {
	mode = strings.Trim(mode, `'"`)
	var flags []string
	for _, f := range strings.Split(mode, ",") {
		f = strings.ToUpper(strings.TrimSpace(f))
		if f != "" {
			flags = append(flags, f)
		}
	}
	return flags
}

// mysqlDialect has no dollar quoting and no E'...' literals.
// Backslash escapes inside literals unless NO_BACKSLASH_ESCAPES is set.
// With ANSI_QUOTES double quotes delimit identifiers.
func mysqlDialect(sqlMode []string) scan.Dialect {
	d := scan.Dialect{
		Placeholder:     '?',
		LiteralQuote:    '\'',
		IdentifierQuote: '`',
		EscapeChar:      '\\',
	}
	for _, f := range sqlMode {
		switch f {
		case sqlModeAnsiQuotes:
			d.IdentifierQuote = '"'
		case sqlModeNoBackslashEscapes:
			d.EscapeChar = 0
		}
	}
	return d
}

func registerMySQLTypes(g *GenericTranslator) {
	g.RegisterType(TypeInfo{myTypeTiny, db.SQLTinyint, 3, 0}, db.SQLTinyint)
	g.RegisterType(TypeInfo{myTypeShort, db.SQLSmallint, 5, 0}, db.SQLSmallint)
	g.RegisterType(TypeInfo{myTypeLong, db.SQLInteger, 10, 0}, db.SQLInteger)
	g.RegisterType(TypeInfo{myTypeLongLong, db.SQLBigint, 19, 0}, db.SQLBigint)
	g.RegisterType(TypeInfo{myTypeFloat, db.SQLReal, 7, 0}, db.SQLReal)
	g.RegisterType(TypeInfo{myTypeDouble, db.SQLDouble, 15, 0}, db.SQLDouble, db.SQLFloat)
	g.RegisterType(TypeInfo{myTypeNewDecimal, db.SQLDecimal, 65, 30}, db.SQLDecimal, db.SQLNumeric)
	g.RegisterType(TypeInfo{myTypeBit, db.SQLBit, 1, 0}, db.SQLBit)
	g.RegisterType(TypeInfo{myTypeString, db.SQLChar, 255, 0}, db.SQLChar, db.SQLWChar, db.SQLGUID)
	g.RegisterType(TypeInfo{myTypeVarString, db.SQLVarchar, 65535, 0}, db.SQLVarchar, db.SQLWVarchar)
	g.RegisterType(TypeInfo{myTypeBlob, db.SQLLongVarbinary, 65535, 0},
		db.SQLLongVarchar, db.SQLWLongVarchar, db.SQLBinary, db.SQLVarbinary, db.SQLLongVarbinary)
	g.RegisterType(TypeInfo{myTypeDate, db.SQLTypeDate, 10, 0}, db.SQLTypeDate, db.SQLDate)
	g.RegisterType(TypeInfo{myTypeTime, db.SQLTypeTime, 8, 0}, db.SQLTypeTime, db.SQLTime)
	g.RegisterType(TypeInfo{myTypeDateTime, db.SQLTypeTimestamp, 26, 6}, db.SQLTypeTimestamp, db.SQLTimestamp)
}
