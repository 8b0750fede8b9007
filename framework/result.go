package framework

// TestID identifies one test case within a suite run.
type TestID struct {
	Name string
}

func (id TestID) String() string { return id.Name }

// TestResult is the recorded outcome of a single test case.
type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

// Failed returns true if any error was recorded for the test.
func (r TestResult) Failed() bool { return len(r.Errors) > 0 }

// Results is the aggregate outcome of a suite run. Tests holds every case in
// run order, including skipped ones; Failures is the failed subset.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// OK returns true if no executed test failed.
func (r Results) OK() bool { return len(r.Failures) == 0 }

// Counts returns how many executed tests passed and how many were executed
// overall. Skipped tests appear in neither count.
func (r Results) Counts() (passed, run int) {
	for _, tr := range r.Tests {
		if tr.Skipped {
			continue
		}
		run++
		if !tr.Failed() {
			passed++
		}
	}
	return
}
