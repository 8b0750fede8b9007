package commandtests

import (
	"fmt"
	"runtime/debug"

	"github.com/mcpgit/server-contract-tests/framework"
	"github.com/mcpgit/server-contract-tests/protocol"

	"github.com/launchdarkly/go-test-helpers/v2/jsonhelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// CommandSender is the part of the command client the harness uses,
// abstracted so suite tests can substitute a scripted fake.
type CommandSender interface {
	SendCommand(command string, params ldvalue.Value) (protocol.Response, error)
}

// Runner executes test cases in order against a live server and aggregates
// results. It owns the run/passed counters exclusively; execution is
// strictly sequential, so no locking is needed. The Runner is the outermost
// error boundary for each test: client errors and validator panics become
// recorded failures and never abort the suite.
type Runner struct {
	client      CommandSender
	filter      framework.Filter
	testLogger  framework.TestLogger
	results     framework.Results
	testsRun    int
	testsPassed int
}

// NewRunner creates a Runner. A nil filter runs every case; a nil testLogger
// disables progress reporting.
func NewRunner(client CommandSender, filter framework.Filter, testLogger framework.TestLogger) *Runner {
	if testLogger == nil {
		testLogger = framework.NullTestLogger()
	}
	return &Runner{
		client:     client,
		filter:     filter,
		testLogger: testLogger,
	}
}

// RunTest executes one test case and records its outcome, returning true if
// it passed. Cases excluded by the filter are reported skipped and counted
// in neither counter.
func (r *Runner) RunTest(tc TestCase) bool {
	id := framework.TestID{Name: tc.Name}
	r.testLogger.TestStarted(id)

	if r.filter != nil && !r.filter(id) {
		r.testLogger.TestSkipped(id, "excluded by filter parameters")
		r.results.Tests = append(r.results.Tests, framework.TestResult{TestID: id, Skipped: true})
		return false
	}

	r.testsRun++
	var debugLog framework.CapturingLogger
	errs := r.runCase(tc, &debugLog)

	for _, e := range errs {
		r.testLogger.TestError(id, e)
	}

	result := framework.TestResult{TestID: id, Errors: errs}
	r.results.Tests = append(r.results.Tests, result)
	failed := len(errs) > 0
	if failed {
		r.results.Failures = append(r.results.Failures, result)
	} else {
		r.testsPassed++
	}
	r.testLogger.TestFinished(id, failed, debugLog.Output())
	return !failed
}

// runCase performs the exchange and evaluates both expectations. The status
// check and the validation rule are evaluated independently so a failure
// diagnosis shows which check failed.
func (r *Runner) runCase(tc TestCase, debugLog framework.Logger) (errs []error) {
	defer func() {
		if p := recover(); p != nil {
			errs = append(errs, fmt.Errorf("unexpected panic in test: %+v\n%s", p, string(debug.Stack())))
		}
	}()

	debugLog.Printf("command: %s, params: %s", tc.Command, tc.Params.JSONString())
	resp, err := r.client.SendCommand(tc.Command, tc.Params)
	if err != nil {
		return []error{err}
	}
	debugLog.Printf("response: %s", jsonhelpers.ToJSONString(resp))

	if resp.Status != tc.expectedStatus() {
		errs = append(errs, fmt.Errorf("expected status %q, got %q", tc.expectedStatus(), resp.Status))
	}
	if tc.Validate != nil {
		if err := runValidator(tc.Validate, resp); err != nil {
			errs = append(errs, fmt.Errorf("response validation failed: %w", err))
		}
	}
	return errs
}

// runValidator applies a user-supplied validator, converting a panic inside
// it into a failure rather than letting it escape the harness.
func runValidator(validate Validator, resp protocol.Response) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("validator panicked: %+v", p)
		}
	}()
	return validate(resp)
}

// RunSuite executes the cases in order and returns the aggregate results. A
// failing or erroring case never prevents later cases from running.
func (r *Runner) RunSuite(cases []TestCase) framework.Results {
	for _, tc := range cases {
		r.RunTest(tc)
	}
	return r.results
}

// Counts returns how many tests passed and how many were executed.
func (r *Runner) Counts() (passed, run int) {
	return r.testsPassed, r.testsRun
}
