package config

import (
	"fmt"
	"io/ioutil"

	"github.com/s4mli/farola/common"
	"github.com/s4mli/farola/model"
	"gopkg.in/yaml.v2"
)

const appName = "farola"

func (c *Config) String() string { return common.Stringify(*c) }

func (c *Config) validate() []error {
	var errors []error
	if c.Log.Backend == "" {
		errors = append(errors, fmt.Errorf("wrong Log[Backend]"))
	}
	if c.Log.Identity == "" {
		errors = append(errors, fmt.Errorf("wrong Log[Identity]"))
	}
	if _, err := model.LevelFromString(c.Log.Level); err != nil {
		errors = append(errors, fmt.Errorf("wrong Log[Level] ( %s )", c.Log.Level))
	}
	if _, err := model.LevelFromString(c.Alert.Threshold); err != nil {
		errors = append(errors, fmt.Errorf("wrong Alert[Threshold] ( %s )", c.Alert.Threshold))
	}
	return errors
}

func LoadConfig(env string, configFile string) (*Config, []error) {
	raw, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, []error{err}
	}
	var appConfigs map[string]map[string]*Config
	if err := yaml.Unmarshal(raw, &appConfigs); err != nil {
		return nil, []error{err}
	}
	cs, ok := appConfigs[appName]
	if !ok {
		return nil, []error{fmt.Errorf("ensure config is for %s", appName)}
	}
	c, ok := cs[env]
	if !ok || c == nil {
		return nil, []error{fmt.Errorf("missing config for %s", env)}
	}
	if errors := c.validate(); len(errors) > 0 {
		return nil, errors
	}
	return c, nil
}
