package sqldb

import (
	"fmt"
	"net"

	_ "github.com/lib/pq"
	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
)

func NewPgSQL(target, identity string, config map[string]string) (model.Backend, error) {
	host, port, err := net.SplitHostPort(target)
	if err != nil {
		return nil, fmt.Errorf("wrong target ( %s )", target)
	}
	return &helper{
		kind:   "postgres",
		driver: "postgres",
		dsn: fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
			host, port, config["user"], config["dbname"], config["password"]),
		table: tableFrom(config),
	}, nil
}

func init() { dispatch.RegisterBackend("postgres", NewPgSQL) }
