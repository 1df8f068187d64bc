package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/s4mli/farola/cleaner"
	"github.com/s4mli/farola/config"
	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
	"github.com/sirupsen/logrus"

	_ "github.com/s4mli/farola/backend/console"
	_ "github.com/s4mli/farola/backend/file"
	logrusbackend "github.com/s4mli/farola/backend/logrus"
	_ "github.com/s4mli/farola/backend/rabbit"
	_ "github.com/s4mli/farola/backend/sqldb"
	_ "github.com/s4mli/farola/backend/sqs"
	_ "github.com/s4mli/farola/backend/syslog"
)

// alert mirrors everything at or above its threshold onto stderr.
type alert struct {
	threshold model.Level
}

func (a *alert) Threshold() model.Level { return a.threshold }
func (a *alert) Notify(m model.Message) {
	fmt.Fprintf(os.Stderr, "!! %s %s: %s\n", m.Priority, m.Identity, m.Text)
}

func main() {
	env := os.Getenv("farola_env")
	if env == "" {
		env = "development"
	}
	var configFile string
	flag.StringVar(&configFile, "config", "./config.yaml", "configuration file to load")
	flag.Parse()

	c, errs := config.LoadConfig(env, configFile)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Println(err.Error())
		}
		os.Exit(1)
	}

	logger := logrus.New()
	if lvl, err := model.LevelFromString(c.Log.Level); err == nil {
		logger.SetLevel(logrusbackend.Severity(lvl))
	}
	logger.Debugf("running with %s", c)

	registry := dispatch.NewRegistry(logger)
	d, err := registry.GetOrCreate(c.Log.Backend, c.Log.Target, c.Log.Identity, c.Log.Options)
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	threshold, err := model.LevelFromString(c.Alert.Threshold)
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	if _, err := d.Attach(&alert{threshold}); err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	if err := d.Log(fmt.Sprintf("%s started", c.Log.Identity), model.NOTICE); err != nil {
		logger.Error(err)
	}
	cleaner.Run(context.Background(), logger)
}
