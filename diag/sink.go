package diag

import (
	"fmt"
	"sort"
	"sync"
)

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only diagnostics and the closing summary
	LogLevelWarning        // diagnostics, warnings and the closing summary
	LogLevelVerbose        // everything above plus progress messages (DEFAULT)
)

// ParseLogLevel maps a log level name to its value. Unknown names default to
// verbose.
func ParseLogLevel(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarning
	default:
		return LogLevelVerbose
	}
}

// Diagnostic is one reported semantic or syntax error.
type Diagnostic struct {
	Filename string
	Line     int
	Message  string
}

// String renders the diagnostic as `<filename>:<line>: <message>`.
func (d Diagnostic) String() string {
	if d.Filename == "" {
		return d.Message
	}
	return fmt.Sprintf("%s:%d: %s", d.Filename, d.Line, d.Message)
}

// Sink accumulates diagnostics and the error count that gates the pipeline.
// It is safe for concurrent use.
type Sink struct {
	LogLevel int

	errorCount  int
	diagnostics []Diagnostic
	warnings    []string

	m *sync.Mutex
}

func NewSink(logLevel int) *Sink {
	return &Sink{
		LogLevel: logLevel,
		m:        &sync.Mutex{},
	}
}

// Errorf records a diagnostic at filename:line and bumps the error count.
func (s *Sink) Errorf(filename string, line int, format string, args ...interface{}) {
	s.handle(Diagnostic{
		Filename: filename,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Error records a diagnostic that has no source location.
func (s *Sink) Error(format string, args ...interface{}) {
	s.handle(Diagnostic{Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) handle(d Diagnostic) {
	s.m.Lock()
	defer s.m.Unlock()

	s.errorCount++
	s.diagnostics = append(s.diagnostics, d)

	if s.LogLevel > LogLevelSilent {
		displayDiagnostic(d)
	}
}

// Warnf records a warning. Warnings never affect the error count and are
// displayed once compilation finishes.
func (s *Sink) Warnf(format string, args ...interface{}) {
	s.m.Lock()
	defer s.m.Unlock()

	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

// Progress prints a status line when the sink is verbose.
func (s *Sink) Progress(format string, args ...interface{}) {
	if s.LogLevel >= LogLevelVerbose {
		PrintInfoMessage("Check", fmt.Sprintf(format, args...))
	}
}

func (s *Sink) Count() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.errorCount
}

// ShouldProceed reports whether no errors have been recorded so far.
func (s *Sink) ShouldProceed() bool {
	return s.Count() == 0
}

// Diagnostics returns the recorded diagnostics in emission order.
func (s *Sink) Diagnostics() []Diagnostic {
	s.m.Lock()
	defer s.m.Unlock()

	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// Sorted returns the diagnostics ordered by filename and line. Diagnostics on
// the same line keep their emission order.
func (s *Sink) Sorted() []Diagnostic {
	out := s.Diagnostics()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Filename != out[j].Filename {
			return out[i].Filename < out[j].Filename
		}
		return out[i].Line < out[j].Line
	})
	return out
}

// Finish flushes warnings and prints the closing summary.
func (s *Sink) Finish() {
	s.m.Lock()
	defer s.m.Unlock()

	if s.LogLevel >= LogLevelWarning {
		for _, w := range s.warnings {
			PrintWarningMessage("Warning", w)
		}
	}
	if s.LogLevel > LogLevelSilent {
		displayCheckFinished(s.errorCount == 0, s.errorCount, len(s.warnings))
	}
}
