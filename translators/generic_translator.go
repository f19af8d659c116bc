package translators

import (
	"github.com/quintans/goBind/db"
	"github.com/quintans/goBind/scan"
	"github.com/quintans/toolkit/log"
)

var logger = log.LoggerFor("github.com/quintans/goBind/translators")

// TypeInfo is what a translator knows about one server type.
type TypeInfo struct {
	ServerType    db.ServerType
	ConciseType   db.SQLType
	ColumnSize    uint64
	DecimalDigits int16
}

/*
 * =================
 * GenericTranslator
 * =================
 */

type GenericTranslator struct {
	dialect  scan.Dialect
	encoding *scan.Encoding
	// each SQL type is sent as the server type registered for it
	bySQLType    map[db.SQLType]db.ServerType
	byServerType map[db.ServerType]TypeInfo
	nullable     db.Nullability
}

var _ db.Translator = (*GenericTranslator)(nil)

// NewGenericTranslator creates a translator that knows no server types.
// Every parameter is described as varchar.
func NewGenericTranslator() *GenericTranslator {
	g := new(GenericTranslator)
	g.Init(scan.DefaultDialect(), scan.DefaultEncoding())
	return g
}

func (g *GenericTranslator) Init(dialect scan.Dialect, encoding *scan.Encoding) {
	g.dialect = dialect
	g.encoding = encoding
	g.bySQLType = map[db.SQLType]db.ServerType{}
	g.byServerType = map[db.ServerType]TypeInfo{}
	g.nullable = db.NullableUnknown
}

// RegisterType registers a server type and the SQL types sent as it.
// The first registration of an SQL type wins.
func (g *GenericTranslator) RegisterType(info TypeInfo, sqlTypes ...db.SQLType) {
	g.byServerType[info.ServerType] = info
	for _, t := range sqlTypes {
		if _, ok := g.bySQLType[t]; !ok {
			g.bySQLType[t] = info.ServerType
		}
	}
}

func (g *GenericTranslator) Dialect() scan.Dialect {
	return g.dialect
}

func (g *GenericTranslator) SetDialect(dialect scan.Dialect) {
	g.dialect = dialect
}

func (g *GenericTranslator) Encoding() *scan.Encoding {
	return g.encoding
}

func (g *GenericTranslator) SetEncoding(encoding *scan.Encoding) {
	g.encoding = encoding
}

// SetEncodingName switches the client encoding by name.
func (g *GenericTranslator) SetEncodingName(name string) error {
	enc, err := scan.LookupEncoding(name)
	if err != nil {
		return err
	}
	logger.Debugf("client encoding set to %s", enc.Name())
	g.encoding = enc
	return nil
}

func (g *GenericTranslator) ServerType(sqlType db.SQLType) db.ServerType {
	return g.bySQLType[sqlType]
}

func (g *GenericTranslator) ConciseType(serverType db.ServerType) db.SQLType {
	if info, ok := g.byServerType[serverType]; ok {
		return info.ConciseType
	}
	return db.SQLVarchar
}

func (g *GenericTranslator) ColumnSize(serverType db.ServerType) uint64 {
	return g.byServerType[serverType].ColumnSize
}

func (g *GenericTranslator) DecimalDigits(serverType db.ServerType) int16 {
	return g.byServerType[serverType].DecimalDigits
}

func (g *GenericTranslator) Nullable(direction db.Direction) db.Nullability {
	return g.nullable
}

func (g *GenericTranslator) SetNullable(nullable db.Nullability) {
	g.nullable = nullable
}
