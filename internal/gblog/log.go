// Package gblog is the ambient logging facade the gameboy package
// logs through: a small interface a host can swap, a fmt-backed
// default, and a null implementation for quiet test runs.
package gblog

import "fmt"

// Logger is the logging interface the core depends on.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct{}

// New returns a Logger that writes to stdout via fmt.Printf.
func New() Logger {
	return &logger{}
}

func (l *logger) Infof(format string, args ...interface{}) {
	fmt.Printf("[INFO]\t"+format+"\n", args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	fmt.Printf("[ERROR]\t"+format+"\n", args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	fmt.Printf("[DEBUG]\t"+format+"\n", args...)
}
