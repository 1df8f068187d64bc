package syslog

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
)

// RFC 3164 wire format over UDP (or TCP via config "proto"). The model levels
// already carry syslog severity numbering; the facility comes from config.
type syslog struct {
	target   string
	proto    string
	facility int
	hostname string

	mu   sync.Mutex
	conn net.Conn
}

func (s *syslog) Composite() bool { return false }

func (s *syslog) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return nil
	}
	conn, err := net.Dial(s.proto, s.target)
	if err != nil {
		return &model.ConnectError{Backend: "syslog", Err: err}
	}
	s.conn = conn
	return nil
}

func (s *syslog) Write(m model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return &model.WriteError{Backend: "syslog", Err: model.ErrClosed}
	}
	pri := s.facility<<3 | int(m.Priority)
	datagram := fmt.Sprintf("<%d>%s %s %s: %s",
		pri, m.At.Format("Jan  2 15:04:05"), s.hostname, m.Identity, m.Text)
	if _, err := s.conn.Write([]byte(datagram)); err != nil {
		return &model.WriteError{Backend: "syslog", Err: err}
	}
	return nil
}

func (s *syslog) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func New(target, identity string, config map[string]string) (model.Backend, error) {
	proto := config["proto"]
	if proto == "" {
		proto = "udp"
	}
	facility := 1 // user-level
	if f, ok := config["facility"]; ok {
		parsed, err := strconv.Atoi(f)
		if err != nil || parsed < 0 || parsed > 23 {
			return nil, fmt.Errorf("wrong facility ( %s )", f)
		}
		facility = parsed
	}
	hostname, _ := os.Hostname()
	return &syslog{target: target, proto: proto, facility: facility, hostname: hostname}, nil
}

func init() { dispatch.RegisterBackend("syslog", New) }
