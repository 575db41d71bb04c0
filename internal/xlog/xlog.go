/*
Package xlog provides a Logger interface and supporting functions to
control debug output from the codec without every call site having to
nil-check a *log.Logger itself.

The standard library's log package doesn't support enabling or
disabling output short of redirecting to io.Discard, which still pays
for formatting. The Logger interface here is satisfied by *log.Logger;
every helper below is a no-op when passed a nil Logger, so callers can
pass a caller-supplied logger straight through without a conditional
at every call site.
*/
package xlog

import "fmt"

// Logger is satisfied by *log.Logger.
type Logger interface {
	Output(calldepth int, s string) error
}

// Print outputs v using l. If l is nil nothing is printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints format, v using l. If l is nil nothing is printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints v, followed by a newline, using l. If l is nil
// nothing is printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}
