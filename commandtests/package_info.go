// Package commandtests contains the conformance suite that is run against a
// live MCP git server, and the harness that executes it: a fixed ordered
// list of scripted commands, each with an expected response status and an
// optional validation rule.
package commandtests
