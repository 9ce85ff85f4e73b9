// FILE: src/cmd/tracekit/output.go
package main

import (
	"fmt"
	"io"
	"os"
)

// OutputHandler carries the tool's operational messages, status lines
// and errors alike. Recovered entry data never flows through it; dump
// output is written to stdout directly so redirection stays clean even
// in quiet mode.
type OutputHandler struct {
	stdout io.Writer
	stderr io.Writer
}

var output *OutputHandler

// InitOutputHandler wires the global handler. Quiet mode swaps both
// streams for io.Discard; data output is unaffected.
func InitOutputHandler(quiet bool) {
	h := &OutputHandler{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if quiet {
		h.stdout = io.Discard
		h.stderr = io.Discard
	}
	output = h
}

func (o *OutputHandler) Print(format string, args ...any) {
	fmt.Fprintf(o.stdout, format, args...)
}

func (o *OutputHandler) Error(format string, args ...any) {
	fmt.Fprintf(o.stderr, format, args...)
}

func (o *OutputHandler) FatalError(code int, format string, args ...any) {
	o.Error(format, args...)
	os.Exit(code)
}

// Print writes an operational message to stdout, honoring quiet mode.
func Print(format string, args ...any) {
	if output != nil {
		output.Print(format, args...)
	}
}

// Error writes an operational message to stderr, honoring quiet mode.
func Error(format string, args ...any) {
	if output != nil {
		output.Error(format, args...)
	}
}

// FatalError reports and exits with the given code. Usable before the
// handler is initialized; the message then goes to stderr unconditionally.
func FatalError(code int, format string, args ...any) {
	if output != nil {
		output.FatalError(code, format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}
