package config

type Log struct {
	Level    string            `yaml:"level"`
	Backend  string            `yaml:"backend"`
	Target   string            `yaml:"target"`
	Identity string            `yaml:"identity"`
	Options  map[string]string `yaml:"options"`
}

type Alert struct {
	Threshold string `yaml:"threshold"`
}

type Config struct {
	Log   Log   `yaml:"log"`
	Alert Alert `yaml:"alert"`
}
