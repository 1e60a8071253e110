// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"fmt"
	"os"
)

var verbose = false

// SetVerbose toggles debug output
func SetVerbose(v bool) {
	verbose = v
}

// Debug prints a debug message when verbose output is enabled
func Debug(args ...interface{}) {
	if verbose {
		fmt.Fprintln(os.Stderr, args...)
	}
}

// Debugf prints a formatted debug message when verbose output is enabled
func Debugf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Info prints an informational message
func Info(args ...interface{}) {
	fmt.Println(args...)
}

// Infof prints a formatted informational message
func Infof(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Action prints a message that marks the start of an action
func Action(args ...interface{}) {
	fmt.Print("==> ")
	fmt.Println(args...)
}

// Actionf prints a formatted message that marks the start of an action
func Actionf(format string, args ...interface{}) {
	fmt.Printf("==> "+format+"\n", args...)
}

// Error prints an error message
func Error(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
}

// Errorf prints a formatted error message
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Fatal prints an error message and quits
func Fatal(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

// Fatalf prints a formatted error message and quits
func Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
