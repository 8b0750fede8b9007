package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mcpgit/server-contract-tests/framework"

	"github.com/alessio/shellescape"
)

const defaultPort = 9876

const (
	modeSuite       = "suite"
	modeCommand     = "command"
	modeInteractive = "interactive"
)

type commandParams struct {
	host       string
	port       int
	mode       string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	junitFile  string
	command    string
	paramsJSON string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.host, "host", "localhost", "server hostname")
	fs.IntVar(&c.port, "port", defaultPort, "server port")
	fs.StringVar(&c.mode, "mode", modeSuite, "client mode: suite, command, or interactive")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.junitFile, "junit-file", "", "write a JUnit XML report to this file")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}

	switch c.mode {
	case modeSuite, modeInteractive:
	case modeCommand:
		if fs.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "a command name is required in command mode")
			fs.Usage()
			return false
		}
		c.command = fs.Arg(0)
		c.paramsJSON = fs.Arg(1)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", c.mode)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
