package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"

	"github.com/mcpgit/server-contract-tests/client"
	"github.com/mcpgit/server-contract-tests/commandtests"
	"github.com/mcpgit/server-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	c := client.New(params.host, params.port, mainDebugLogger)

	switch params.mode {
	case modeCommand:
		os.Exit(runSingleCommand(c, params))
	case modeInteractive:
		os.Exit(runInteractive(c, os.Stdin, os.Stdout))
	default:
		os.Exit(runSuite(c, params))
	}
}

func runSuite(c *client.CommandClient, params commandParams) int {
	fmt.Println()
	framework.PrintFilterDescription(params.filters)

	var testLogger framework.TestLogger = framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	var junitLogger *framework.JUnitTestLogger
	if params.junitFile != "" {
		junitLogger = framework.NewJUnitTestLogger(params.junitFile, params.filters)
		testLogger = framework.MultiTestLogger(testLogger, junitLogger)
	}

	fmt.Println("Running test suite")
	results := commandtests.RunTestSuite(c, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if junitLogger != nil {
		if err := junitLogger.EndLog(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JUnit output: %s\n", err)
		}
	}

	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Printf("  %s\n", rerunCommandLine(params, results))
		return 1
	}
	return 0
}

// rerunCommandLine builds a shell command equivalent to this invocation that
// selects only the tests that failed.
func rerunCommandLine(params commandParams, results framework.Results) string {
	var b commandBuilder
	b.add(os.Args[0], "-host", params.host, "-port", strconv.Itoa(params.port))
	for _, f := range results.Failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.Name)+"$")
	}
	return b.String()
}

func runSingleCommand(c *client.CommandClient, params commandParams) int {
	cmdParams, ok := parseParamsJSON(params.paramsJSON)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: invalid JSON parameters")
		return 1
	}

	resp, err := c.SendCommand(params.command, cmdParams)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	pretty, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(pretty))
	return 0
}

// parseParamsJSON turns an optional JSON text into a params value. An empty
// string means no parameters.
func parseParamsJSON(text string) (ldvalue.Value, bool) {
	if text == "" {
		return ldvalue.Null(), true
	}
	if !json.Valid([]byte(text)) {
		return ldvalue.Null(), false
	}
	return ldvalue.Parse([]byte(text)), true
}
