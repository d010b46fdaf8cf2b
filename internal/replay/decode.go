package replay

import (
	"encoding/json"
	"fmt"

	"github.com/vk/harnessgo/internal/event"
)

// newVariant returns a zero value of the concrete variant for a wire kind.
// The switch is exhaustive over the closed message set.
func newVariant(kind string) (event.Message, error) {
	switch kind {
	case "run.starting":
		return &event.RunStarting{}, nil
	case "run.finished":
		return &event.RunFinished{}, nil
	case "discovery.starting":
		return &event.DiscoveryStarting{}, nil
	case "discovery.case":
		return &event.CaseDiscovered{}, nil
	case "discovery.finished":
		return &event.DiscoveryFinished{}, nil
	case "suite.starting":
		return &event.SuiteStarting{}, nil
	case "suite.finished":
		return &event.SuiteFinished{}, nil
	case "case.starting":
		return &event.CaseStarting{}, nil
	case "case.finished":
		return &event.CaseFinished{}, nil
	case "test.starting":
		return &event.TestStarting{}, nil
	case "test.passed":
		return &event.TestPassed{}, nil
	case "test.failed":
		return &event.TestFailed{}, nil
	case "test.skipped":
		return &event.TestSkipped{}, nil
	case "test.finished":
		return &event.TestFinished{}, nil
	case "test.output":
		return &event.TestOutput{}, nil
	case "fixture.setup.starting":
		return &event.FixtureSetupStarting{}, nil
	case "fixture.setup.finished":
		return &event.FixtureSetupFinished{}, nil
	case "fixture.teardown.starting":
		return &event.FixtureTeardownStarting{}, nil
	case "fixture.teardown.finished":
		return &event.FixtureTeardownFinished{}, nil
	case "hook.before.starting":
		return &event.BeforeCaseStarting{}, nil
	case "hook.before.finished":
		return &event.BeforeCaseFinished{}, nil
	case "hook.after.starting":
		return &event.AfterCaseStarting{}, nil
	case "hook.after.finished":
		return &event.AfterCaseFinished{}, nil
	case "harness.construction.starting":
		return &event.HarnessConstructionStarting{}, nil
	case "harness.construction.finished":
		return &event.HarnessConstructionFinished{}, nil
	case "harness.dispose.starting":
		return &event.HarnessDisposeStarting{}, nil
	case "harness.dispose.finished":
		return &event.HarnessDisposeFinished{}, nil
	case "cleanup.failure":
		return &event.CleanupFailure{}, nil
	case "error.report":
		return &event.ErrorReport{}, nil
	case "diagnostic":
		return &event.Diagnostic{}, nil
	case "diagnostic.internal":
		return &event.InternalDiagnostic{}, nil
	case "case.retry":
		return &event.CaseRetryScheduled{}, nil
	case "case.timeout":
		return &event.TimeoutExceeded{}, nil
	case "case.artifact":
		return &event.ArtifactAttached{}, nil
	case "process.output":
		return &event.ProcessOutput{}, nil
	default:
		return nil, fmt.Errorf("unknown message kind %q", kind)
	}
}

// Decode turns one JSON envelope into its concrete message variant.
func Decode(line []byte) (event.Message, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(line, &head); err != nil {
		return nil, fmt.Errorf("malformed event envelope: %w", err)
	}
	if head.Kind == "" {
		return nil, fmt.Errorf("event envelope is missing its kind")
	}

	msg, err := newVariant(head.Kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(line, msg); err != nil {
		return nil, fmt.Errorf("malformed %q event: %w", head.Kind, err)
	}
	return msg, nil
}

// Encode writes one message as its JSON envelope, the inverse of Decode.
// Useful for producers and for round-trip tests.
func Encode(msg event.Message) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	// Inject the discriminator into the variant's own object.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["kind"] = json.RawMessage(fmt.Sprintf("%q", msg.Kind()))
	return json.Marshal(fields)
}
