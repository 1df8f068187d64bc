package model

import (
	"fmt"
	"strings"
)

// Level follows the syslog severity scale: lower value, higher severity.
type Level int

const (
	EMERGENCY Level = iota
	ALERT
	CRITICAL
	ERROR
	WARNING
	NOTICE
	INFO
	DEBUG
)

var levelNames = [...]string{
	"emergency", "alert", "critical", "error", "warning", "notice", "info", "debug",
}

func (l Level) Valid() bool { return l >= EMERGENCY && l <= DEBUG }

// Name returns the canonical lowercase name of the level.
func (l Level) Name() (string, error) {
	if !l.Valid() {
		return "", fmt.Errorf("%w ( %d )", ErrInvalidLevel, int(l))
	}
	return levelNames[l], nil
}

func (l Level) String() string {
	if name, err := l.Name(); err != nil {
		return fmt.Sprintf("level(%d)", int(l))
	} else {
		return name
	}
}

func LevelFromString(s string) (Level, error) {
	for i, name := range levelNames {
		if name == strings.ToLower(s) {
			return Level(i), nil
		}
	}
	return INFO, fmt.Errorf("%w ( %s )", ErrInvalidLevel, s)
}
