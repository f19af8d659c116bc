package main

import (
	"github.com/quintans/goBind/db"
	"github.com/quintans/goBind/dbx"
	trx "github.com/quintans/goBind/translators"

	"fmt"
)

func main() {
	// translator matching the session the DSN opens
	translator, err := trx.NewMySQL5TranslatorFromDSN("root:root@/gobind?charset=utf8mb4&sql_mode=ANSI_QUOTES")
	if err != nil {
		fmt.Printf("%+v\n", err)
		panic(err)
	}

	stmt := db.NewStatement(translator, db.StmtWithDiscardOutputParams(true))
	defer stmt.Close()

	if err = stmt.SetStatementText(`UPDATE "PUBLISHER" SET NAME = ? WHERE ID = ? AND NAME <> 'what?'`); err != nil {
		fmt.Printf("%+v\n", err)
		panic(err)
	}
	n, err := stmt.NumParams()
	if err != nil {
		panic(err)
	}
	fmt.Println("parameters:", n)

	// application buffers stay owned by the application
	name := []byte("Geek Publications")
	nameLen := []int64{int64(len(name))}
	id := make([]byte, 8)
	err = stmt.BindParameter(1, db.ParamInput, db.CChar, db.SQLVarchar, 50, 0, dbx.Borrow(name), int64(len(name)), dbx.BorrowLen(nameLen))
	if err != nil {
		panic(err)
	}
	err = stmt.BindParameter(2, db.ParamInput, db.CSBigInt, db.SQLBigint, 0, 0, dbx.Borrow(id), 8, dbx.LenRef{})
	if err != nil {
		panic(err)
	}

	for c := stmt.Parameters(); ; {
		i, ipd, apd := c.Next()
		if ipd == nil || apd == nil {
			break
		}
		d, err := stmt.DescribeParameter(i + 1)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%d: %s %s => %+v\n", i+1, ipd, apd, d)
	}

	fmt.Printf("%+v\n", stmt.CountParameters())
}
