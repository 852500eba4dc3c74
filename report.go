package interactor

import "sync/atomic"

// ErrorReporter is the process-wide sink for errors that have no caller to
// return to, such as a failed asynchronous machine load.
type ErrorReporter func(error)

var reporterPtr atomic.Pointer[ErrorReporter]

// SetErrorReporter installs the process-wide error sink. Pass nil to restore
// the default, which logs at error level through Logger().
func SetErrorReporter(fn ErrorReporter) {
	if fn == nil {
		reporterPtr.Store(nil)
		return
	}
	reporterPtr.Store(&fn)
}

// ReportError sends err to the process-wide error sink. A nil err is ignored.
func ReportError(err error) {
	if err == nil {
		return
	}
	if fn := reporterPtr.Load(); fn != nil {
		(*fn)(err)
		return
	}
	Logger().Error("interactor error", "err", err)
}
