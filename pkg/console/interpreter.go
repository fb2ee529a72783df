// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package console

import (
	"fmt"
	"io"
	"strings"
)

// Command is one entry in a command table. Matching is case-sensitive: a
// line matches on the exact Name, or on Name followed by a space when
// TakesArg is set. Exact-name matching means command order within a table
// never changes which entry wins (START_TEMP can sit after START).
type Command struct {
	Name     string
	Usage    string // display form, e.g. "INTERVAL <ms>"; Name when empty
	Help     string
	TakesArg bool
	Run      func(w io.Writer, arg string) error
}

func (c Command) usage() string {
	if c.Usage != "" {
		return c.Usage
	}
	return c.Name
}

// Table is an ordered, named group of commands.
type Table struct {
	Title    string
	Commands []Command
}

// Interpreter dispatches completed lines against its command tables in
// order. The first table is the example-specific one; later tables (the
// shared runtime-update set) catch what falls through. HELP is built in and
// lists every table.
type Interpreter struct {
	out    io.Writer
	tables []Table
}

// NewInterpreter creates an interpreter writing responses to out.
func NewInterpreter(out io.Writer, tables ...Table) *Interpreter {
	return &Interpreter{out: out, tables: tables}
}

// Dispatch matches line against the tables and runs the handler. Unknown
// input is never dropped silently: the operator gets the command listing.
// The returned error is nil for every recoverable outcome; handlers only
// propagate terminal transitions.
func (i *Interpreter) Dispatch(line Line) error {
	if line.Truncated {
		fmt.Fprintf(i.out, "Warning: command exceeded %d bytes, excess input dropped\n", MaxLineLength)
	}
	if line.Text == "HELP" {
		i.writeHelp()
		return nil
	}
	for _, t := range i.tables {
		for _, c := range t.Commands {
			arg, ok := match(line.Text, c)
			if !ok {
				continue
			}
			return c.Run(i.out, arg)
		}
	}
	fmt.Fprintf(i.out, "Unknown command: %s\n", line.Text)
	i.writeHelp()
	return nil
}

// match reports whether text selects c, returning the trailing argument for
// argument-taking commands.
func match(text string, c Command) (arg string, ok bool) {
	if text == c.Name {
		return "", true
	}
	if c.TakesArg && strings.HasPrefix(text, c.Name+" ") {
		return strings.TrimSpace(text[len(c.Name)+1:]), true
	}
	return "", false
}

func (i *Interpreter) writeHelp() {
	fmt.Fprintf(i.out, "Available commands:\n")
	for _, t := range i.tables {
		fmt.Fprintf(i.out, "  %s:\n", t.Title)
		for _, c := range t.Commands {
			fmt.Fprintf(i.out, "    %-14s - %s\n", c.usage(), c.Help)
		}
	}
	fmt.Fprintf(i.out, "    %-14s - %s\n", "HELP", "Show this help")
}
