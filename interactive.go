package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcpgit/server-contract-tests/protocol"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// interactiveClient is the part of the command client the REPL uses.
type interactiveClient interface {
	Address() string
	SendCommand(command string, params ldvalue.Value) (protocol.Response, error)
}

// runInteractive reads commands from in until EOF or "exit". Each command
// prompt is followed by a prompt for an optional JSON object of parameters.
// Errors from individual commands are printed and the loop continues.
func runInteractive(c interactiveClient, in io.Reader, out io.Writer) int {
	fmt.Fprintf(out, "Interactive mode against %s\n", c.Address())
	fmt.Fprintln(out, "Type 'exit' to quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nCommand: ")
		if !scanner.Scan() {
			break
		}
		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}
		if strings.EqualFold(command, "exit") {
			break
		}

		fmt.Fprint(out, "Parameters (JSON, press enter for none): ")
		if !scanner.Scan() {
			break
		}
		cmdParams, ok := parseParamsJSON(strings.TrimSpace(scanner.Text()))
		if !ok {
			fmt.Fprintln(out, "Error: invalid JSON parameters")
			continue
		}

		resp, err := c.SendCommand(command, cmdParams)
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", err)
			continue
		}

		pretty, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintf(out, "\nResponse:\n%s\n", pretty)
	}
	return 0
}
