package gblog

type nullLogger struct{}

// NewNull returns a Logger that discards everything. The test suite
// uses it so go test output isn't drowned in frame-by-frame noise.
func NewNull() Logger {
	return &nullLogger{}
}

func (l *nullLogger) Infof(format string, args ...interface{})  {}
func (l *nullLogger) Errorf(format string, args ...interface{}) {}
func (l *nullLogger) Debugf(format string, args ...interface{}) {}
