package event

import "time"

// Message is implemented by every lifecycle message variant.
type Message interface {
	// Kind returns the stable wire identifier for this variant,
	// e.g. "test.passed".
	Kind() string
}

// Outcome classifies how a test or case ended.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// FailureInfo carries the details of a failure for diagnosis.
type FailureInfo struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// SuiteMessage is satisfied by every message scoped to a single suite.
type SuiteMessage interface {
	Message
	SuiteName() string
}

// CaseMessage is satisfied by every message scoped to a single test case.
type CaseMessage interface {
	SuiteMessage
	CaseName() string
}

// ResultMessage is satisfied by messages that report a final outcome.
type ResultMessage interface {
	CaseMessage
	CaseOutcome() Outcome
}

// FailureMessage is satisfied by messages that carry failure details.
type FailureMessage interface {
	Message
	FailureInfo() *FailureInfo
}

// suiteScope provides the SuiteMessage accessors via embedding.
type suiteScope struct {
	Suite string `json:"suite"`
}

func (s suiteScope) SuiteName() string { return s.Suite }

// caseScope provides the CaseMessage accessors via embedding.
type caseScope struct {
	suiteScope
	Case string `json:"case"`
}

func (c caseScope) CaseName() string { return c.Case }

// --- Run level ---

// RunStarting announces the start of a whole run.
type RunStarting struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Seed      int64     `json:"seed,omitempty"`
}

func (*RunStarting) Kind() string { return "run.starting" }

// RunFinished is the designated terminal message of a run. Dispatching it
// signals the completion gate.
type RunFinished struct {
	RunID   string        `json:"run_id"`
	Total   int           `json:"total"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Elapsed time.Duration `json:"elapsed"`
}

func (*RunFinished) Kind() string { return "run.finished" }

// --- Discovery ---

// DiscoveryStarting announces the start of case discovery.
type DiscoveryStarting struct {
	RunID string `json:"run_id"`
}

func (*DiscoveryStarting) Kind() string { return "discovery.starting" }

// CaseDiscovered reports one discovered case.
type CaseDiscovered struct {
	caseScope
	DisplayName string `json:"display_name,omitempty"`
}

func (*CaseDiscovered) Kind() string { return "discovery.case" }

// DiscoveryFinished reports the end of discovery.
type DiscoveryFinished struct {
	RunID      string `json:"run_id"`
	CasesFound int    `json:"cases_found"`
}

func (*DiscoveryFinished) Kind() string { return "discovery.finished" }

// --- Suite level ---

// SuiteStarting announces the start of one suite.
type SuiteStarting struct {
	suiteScope
	CaseCount int `json:"case_count"`
}

func (*SuiteStarting) Kind() string { return "suite.starting" }

// SuiteFinished reports the end of one suite.
type SuiteFinished struct {
	suiteScope
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Elapsed time.Duration `json:"elapsed"`
}

func (*SuiteFinished) Kind() string { return "suite.finished" }

// --- Case level ---

// CaseStarting announces the start of one case, including any setup and
// teardown around the test body.
type CaseStarting struct {
	caseScope
}

func (*CaseStarting) Kind() string { return "case.starting" }

// CaseFinished reports the end of one case.
type CaseFinished struct {
	caseScope
	Outcome Outcome       `json:"outcome"`
	Elapsed time.Duration `json:"elapsed"`
}

func (*CaseFinished) Kind() string { return "case.finished" }

func (c *CaseFinished) CaseOutcome() Outcome { return c.Outcome }

// --- Test body ---

// TestStarting announces the start of the test body itself.
type TestStarting struct {
	caseScope
}

func (*TestStarting) Kind() string { return "test.starting" }

// TestPassed reports a passing test body.
type TestPassed struct {
	caseScope
	Elapsed time.Duration `json:"elapsed"`
	Output  string        `json:"output,omitempty"`
}

func (*TestPassed) Kind() string { return "test.passed" }

func (*TestPassed) CaseOutcome() Outcome { return OutcomePassed }

// TestFailed reports a failing test body.
type TestFailed struct {
	caseScope
	Elapsed time.Duration `json:"elapsed"`
	Output  string        `json:"output,omitempty"`
	Failure FailureInfo   `json:"failure"`
}

func (*TestFailed) Kind() string { return "test.failed" }

func (*TestFailed) CaseOutcome() Outcome { return OutcomeFailed }

func (t *TestFailed) FailureInfo() *FailureInfo { return &t.Failure }

// TestSkipped reports a skipped test body.
type TestSkipped struct {
	caseScope
	Reason string `json:"reason,omitempty"`
}

func (*TestSkipped) Kind() string { return "test.skipped" }

func (*TestSkipped) CaseOutcome() Outcome { return OutcomeSkipped }

// TestFinished reports the end of the test body regardless of outcome.
type TestFinished struct {
	caseScope
	Elapsed time.Duration `json:"elapsed"`
}

func (*TestFinished) Kind() string { return "test.finished" }

// TestOutput carries a chunk of live output written by a running test body.
type TestOutput struct {
	caseScope
	Output string `json:"output"`
}

func (*TestOutput) Kind() string { return "test.output" }

// --- Fixtures ---

// FixtureSetupStarting announces the start of a suite fixture's setup.
type FixtureSetupStarting struct {
	suiteScope
	Fixture string `json:"fixture"`
}

func (*FixtureSetupStarting) Kind() string { return "fixture.setup.starting" }

// FixtureSetupFinished reports the end of a suite fixture's setup.
type FixtureSetupFinished struct {
	suiteScope
	Fixture string        `json:"fixture"`
	Elapsed time.Duration `json:"elapsed"`
}

func (*FixtureSetupFinished) Kind() string { return "fixture.setup.finished" }

// FixtureTeardownStarting announces the start of a suite fixture's teardown.
type FixtureTeardownStarting struct {
	suiteScope
	Fixture string `json:"fixture"`
}

func (*FixtureTeardownStarting) Kind() string { return "fixture.teardown.starting" }

// FixtureTeardownFinished reports the end of a suite fixture's teardown.
type FixtureTeardownFinished struct {
	suiteScope
	Fixture string        `json:"fixture"`
	Elapsed time.Duration `json:"elapsed"`
}

func (*FixtureTeardownFinished) Kind() string { return "fixture.teardown.finished" }

// --- Per-case hooks ---

// BeforeCaseStarting announces the start of a before-case hook.
type BeforeCaseStarting struct {
	caseScope
	Hook string `json:"hook"`
}

func (*BeforeCaseStarting) Kind() string { return "hook.before.starting" }

// BeforeCaseFinished reports the end of a before-case hook.
type BeforeCaseFinished struct {
	caseScope
	Hook string `json:"hook"`
}

func (*BeforeCaseFinished) Kind() string { return "hook.before.finished" }

// AfterCaseStarting announces the start of an after-case hook.
type AfterCaseStarting struct {
	caseScope
	Hook string `json:"hook"`
}

func (*AfterCaseStarting) Kind() string { return "hook.after.starting" }

// AfterCaseFinished reports the end of an after-case hook.
type AfterCaseFinished struct {
	caseScope
	Hook string `json:"hook"`
}

func (*AfterCaseFinished) Kind() string { return "hook.after.finished" }

// --- Harness lifecycle ---

// HarnessConstructionStarting announces construction of a suite's harness
// object.
type HarnessConstructionStarting struct {
	suiteScope
}

func (*HarnessConstructionStarting) Kind() string { return "harness.construction.starting" }

// HarnessConstructionFinished reports the end of harness construction.
type HarnessConstructionFinished struct {
	suiteScope
	Elapsed time.Duration `json:"elapsed"`
}

func (*HarnessConstructionFinished) Kind() string { return "harness.construction.finished" }

// HarnessDisposeStarting announces disposal of a suite's harness object.
type HarnessDisposeStarting struct {
	suiteScope
}

func (*HarnessDisposeStarting) Kind() string { return "harness.dispose.starting" }

// HarnessDisposeFinished reports the end of harness disposal.
type HarnessDisposeFinished struct {
	suiteScope
	Elapsed time.Duration `json:"elapsed"`
}

func (*HarnessDisposeFinished) Kind() string { return "harness.dispose.finished" }

// --- Failures outside test bodies ---

// CleanupFailure reports a failure during fixture teardown or harness
// disposal. It is not attributed to any single case.
type CleanupFailure struct {
	suiteScope
	Failure FailureInfo `json:"failure"`
}

func (*CleanupFailure) Kind() string { return "cleanup.failure" }

func (c *CleanupFailure) FailureInfo() *FailureInfo { return &c.Failure }

// ErrorReport reports an infrastructure-level error in the runner itself.
type ErrorReport struct {
	RunID   string      `json:"run_id"`
	Failure FailureInfo `json:"failure"`
}

func (*ErrorReport) Kind() string { return "error.report" }

func (e *ErrorReport) FailureInfo() *FailureInfo { return &e.Failure }

// --- Diagnostics ---

// Diagnostic carries a user-facing diagnostic line from the framework.
type Diagnostic struct {
	Text string `json:"text"`
}

func (*Diagnostic) Kind() string { return "diagnostic" }

// InternalDiagnostic carries a framework-internal diagnostic line, normally
// hidden from end users.
type InternalDiagnostic struct {
	Text string `json:"text"`
}

func (*InternalDiagnostic) Kind() string { return "diagnostic.internal" }

// --- Retry / timeout / artifacts ---

// CaseRetryScheduled reports that a failed case will be retried.
type CaseRetryScheduled struct {
	caseScope
	Attempt     int           `json:"attempt"`
	MaxAttempts int           `json:"max_attempts"`
	Backoff     time.Duration `json:"backoff,omitempty"`
}

func (*CaseRetryScheduled) Kind() string { return "case.retry" }

// TimeoutExceeded reports that a case overran its declared timeout.
type TimeoutExceeded struct {
	caseScope
	Limit   time.Duration `json:"limit"`
	Elapsed time.Duration `json:"elapsed"`
}

func (*TimeoutExceeded) Kind() string { return "case.timeout" }

// ArtifactAttached reports a file artifact attached to a case result.
type ArtifactAttached struct {
	caseScope
	Name string `json:"name"`
	Path string `json:"path"`
}

func (*ArtifactAttached) Kind() string { return "case.artifact" }

// ProcessOutput carries a chunk of stdout/stderr captured from a child
// process spawned by a test.
type ProcessOutput struct {
	caseScope
	Stream string `json:"stream"`
	Output string `json:"output"`
}

func (*ProcessOutput) Kind() string { return "process.output" }
