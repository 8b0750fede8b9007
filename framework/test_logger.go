package framework

// TestLogger receives the progress of a suite run as it happens.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

// NullTestLogger returns a TestLogger that does nothing.
func NullTestLogger() TestLogger { return nullTestLogger{} }

type multiTestLogger struct {
	loggers []TestLogger
}

// MultiTestLogger fans test progress out to several loggers, such as the
// console logger plus a JUnit file logger.
func MultiTestLogger(loggers ...TestLogger) TestLogger {
	return multiTestLogger{loggers: loggers}
}

func (m multiTestLogger) TestStarted(id TestID) {
	for _, l := range m.loggers {
		l.TestStarted(id)
	}
}

func (m multiTestLogger) TestError(id TestID, err error) {
	for _, l := range m.loggers {
		l.TestError(id, err)
	}
}

func (m multiTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	for _, l := range m.loggers {
		l.TestFinished(id, failed, debugOutput)
	}
}

func (m multiTestLogger) TestSkipped(id TestID, reason string) {
	for _, l := range m.loggers {
		l.TestSkipped(id, reason)
	}
}
