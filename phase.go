package testkit

import (
	"os"
	"reflect"

	"github.com/go-kit/log"
)

type Phase int

const (
	PhaseGiven Phase = iota
	PhaseWhen
	PhaseThen
	PhaseAnd
	PhaseBut
)

func (p Phase) String() string {
	switch p {
	case PhaseGiven:
		return "given"
	case PhaseWhen:
		return "when"
	case PhaseThen:
		return "then"
	case PhaseAnd:
		return "and"
	case PhaseBut:
		return "but"
	default:
		return "unknown"
	}
}

type tracedScenario struct {
	scenario Scenario
	logger   Logger
}

var _ Scenario = &tracedScenario{}

// Traced wraps s so that every phase is logged before it is forwarded. A nil
// logger falls back to JSON on stderr.
func Traced(s Scenario, logger Logger) Scenario {
	if logger == nil {
		logger = log.NewJSONLogger(log.NewSyncWriter(os.Stderr))
	}

	return &tracedScenario{
		scenario: s,
		logger: log.With(
			logger,
			"component", "scenario",
			"scenario", reflect.TypeOf(s),
		),
	}
}

func (t *tracedScenario) Given() {
	t.enter(PhaseGiven)
	t.scenario.Given()
}

func (t *tracedScenario) When() {
	t.enter(PhaseWhen)
	t.scenario.When()
}

func (t *tracedScenario) Then() {
	t.enter(PhaseThen)
	t.scenario.Then()
}

func (t *tracedScenario) And() {
	t.enter(PhaseAnd)
	t.scenario.And()
}

func (t *tracedScenario) But() {
	t.enter(PhaseBut)
	t.scenario.But()
}

func (t *tracedScenario) enter(p Phase) {
	t.logger.Log("phase", p)
}
