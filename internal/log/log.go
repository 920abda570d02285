// Package log holds the logrus setup shared by the server and the CLI, plus
// the names of the structured fields used across the code base.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// FldComponent names the subsystem that wrote the entry (repo, handler, queue...)
	FldComponent = "component"
	// FldRequestID is the request id assigned by the request id middleware
	FldRequestID = "request_id"
	// FldMethod is the HTTP method of the request
	FldMethod = "method"
	// FldPath is the matched route path or a file path
	FldPath = "path"
	// FldStatus is the HTTP status returned to the client
	FldStatus = "status"
	// FldLatency is the time spent serving the request
	FldLatency = "latency"
	// FldIP is the remote address of the client
	FldIP = "ip"
	// FldID is the ID of the entity the entry is about
	FldID = "id"
	// FldEvent is the ID of an event
	FldEvent = "event_id"
	// FldSeat is a seat identifier such as A-1-5
	FldSeat = "seat"
	// FldTable is the database table touched by the operation
	FldTable = "table"
	// FldUser is the login name used for authentication
	FldUser = "user"
	// FldQueue is the message broker queue name
	FldQueue = "queue"
	// FldVersion is the application version
	FldVersion = "ver"
)

// New builds the root logger entry. Unknown levels fall back to info and
// format "json" switches to the JSON formatter; anything else is text.
func New(level, format string) *logrus.Entry {
	return NewWithOutput(level, format, os.Stderr)
}

// NewWithOutput is New writing to w.
func NewWithOutput(level, format string, w io.Writer) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logrus.NewEntry(l)
}

// Discard returns an entry that drops everything; used by tests.
func Discard() *logrus.Entry {
	return NewWithOutput("panic", "text", io.Discard)
}
