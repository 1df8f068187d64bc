package model

import "time"

// Message is built once per Log call and never mutated after dispatch; only
// observers may retain it.
type Message struct {
	Text     string
	Priority Level
	Identity string
	At       time.Time
}
