package sqldb

import (
	"fmt"
	"net"

	_ "github.com/denisenkom/go-mssqldb"
	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
)

func NewMsSQL(target, identity string, config map[string]string) (model.Backend, error) {
	host, port, err := net.SplitHostPort(target)
	if err != nil {
		return nil, fmt.Errorf("wrong target ( %s )", target)
	}
	return &helper{
		kind:   "mssql",
		driver: "mssql",
		dsn: fmt.Sprintf("server=%s;user id=%s;password=%s;port=%s;database=%s",
			host, config["user"], config["password"], port, config["dbname"]),
		table: tableFrom(config),
	}, nil
}

func init() { dispatch.RegisterBackend("mssql", NewMsSQL) }
