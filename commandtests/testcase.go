package commandtests

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mcpgit/server-contract-tests/protocol"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Validator checks a decoded response beyond its status field. A nil return
// means the response was acceptable; a non-nil return carries the diagnosis
// that will appear in the test report.
type Validator func(resp protocol.Response) error

// TestCase describes one scripted call to the server and the expectations
// for its response. Cases are defined once and never mutated.
type TestCase struct {
	Name    string
	Command string

	// Params is the JSON object sent as the command's parameters. A null
	// value means no parameters.
	Params ldvalue.Value

	// ExpectedStatus is the status the response must have. The zero value
	// means protocol.StatusSuccess.
	ExpectedStatus protocol.Status

	// Validate, if non-nil, is applied to the full decoded response. Its
	// result is evaluated and reported independently of the status check.
	Validate Validator
}

func (tc TestCase) expectedStatus() protocol.Status {
	if tc.ExpectedStatus == "" {
		return protocol.StatusSuccess
	}
	return tc.ExpectedStatus
}

// errorCollector implements the minimal testing interface the matchers API
// needs, so a matcher failure can be captured as an error value instead of
// failing a real testing.T.
type errorCollector struct {
	errs []error
}

func (c *errorCollector) Errorf(format string, args ...interface{}) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

func (c *errorCollector) FailNow() {}

func (c *errorCollector) result() error {
	switch len(c.errs) {
	case 0:
		return nil
	case 1:
		return c.errs[0]
	default:
		var messages []string
		for _, e := range c.errs {
			messages = append(messages, e.Error())
		}
		return errors.New(strings.Join(messages, "\n"))
	}
}

// MatchResponse builds a Validator that applies a matcher to the whole
// decoded response.
func MatchResponse(matcher m.Matcher) Validator {
	return func(resp protocol.Response) error {
		var c errorCollector
		m.In(&c).Assert(resp, matcher)
		return c.result()
	}
}

// MatchData builds a Validator that applies a matcher to the response's
// "data" object.
func MatchData(matcher m.Matcher) Validator {
	return func(resp protocol.Response) error {
		var c errorCollector
		m.In(&c).Assert(resp.Data, matcher)
		return c.result()
	}
}
