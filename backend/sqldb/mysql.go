package sqldb

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
)

func NewMySQL(target, identity string, config map[string]string) (model.Backend, error) {
	return &helper{
		kind:   "mysql",
		driver: "mysql",
		dsn: fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8&parseTime=true",
			config["user"], config["password"], target, config["dbname"]),
		table: tableFrom(config),
	}, nil
}

func init() { dispatch.RegisterBackend("mysql", NewMySQL) }
