package commandtests

import (
	"github.com/mcpgit/server-contract-tests/framework"
	"github.com/mcpgit/server-contract-tests/protocol"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Suite returns the scripted conformance suite for the git command server,
// in the order the tests always run. Each case is independent; order matters
// only for reporting determinism.
func Suite() []TestCase {
	return []TestCase{
		{
			Name:    "basic connectivity",
			Command: "status",
		},
		{
			Name:           "invalid command is rejected",
			Command:        "invalid_command",
			ExpectedStatus: protocol.StatusError,
		},
		{
			Name:     "commit log with default parameters",
			Command:  "log",
			Validate: MatchData(dataWithArrayProperty("commits")),
		},
		{
			Name:     "commit log respects count",
			Command:  "log",
			Params:   ldvalue.ObjectBuild().Set("count", ldvalue.Int(5)).Build(),
			Validate: MatchData(arrayPropertyCountAtMost("commits", 5)),
		},
		{
			Name:     "local branch list",
			Command:  "branch",
			Validate: MatchData(dataWithArrayProperty("branches")),
		},
		{
			Name:     "remote branch list",
			Command:  "remote",
			Validate: MatchData(dataWithArrayProperty("remotes")),
		},
	}
}

// RunTestSuite runs the full scripted suite through the given client and
// returns the aggregate results.
func RunTestSuite(client CommandSender, filter framework.Filter, testLogger framework.TestLogger) framework.Results {
	runner := NewRunner(client, filter, testLogger)
	return runner.RunSuite(Suite())
}
