package testkit

//go:generate go run go.uber.org/mock/mockgen --source=testkit.go --destination=mock_testkit_test.go -package=testkit_test -self_package=github.com/nrfta/go-testkit Scenario

import (
	"github.com/go-kit/log"
	"github.com/onsi/ginkgo"
)

type Logger interface {
	log.Logger
}

// Scenario is a behaviour-driven test split into Given, When and Then phases.
//
// Nothing checks that the phases are called in order, or at all. Ordering is
// left to whoever invokes them, usually a single test function or Run.
type Scenario interface {
	// Given establishes preconditions and constructs fixtures.
	Given()

	// When invokes the unit of behaviour under test and keeps its outcome in
	// the scenario's own fields.
	When()

	// Then asserts the outcome captured by When.
	Then()

	// And continues the current phase.
	And()

	// But expresses a contrasting condition within the current phase.
	But()
}

// Phases provides the optional And and But markers. Embed it in a struct and
// define Given, When and Then to satisfy Scenario.
//
//	type incrementScenario struct {
//		testkit.Phases
//		a, b int
//	}
//
//	func (s *incrementScenario) Given() { s.a = 5 }
//	func (s *incrementScenario) When()  { s.b = s.a + 1 }
//	func (s *incrementScenario) Then()  { Expect(s.b).To(Equal(6)) }
type Phases struct{}

func (Phases) And() {}

func (Phases) But() {}

// Run calls Given, When and Then once each, in that order. A panic raised by
// any phase is not recovered, so the phases after it never run.
func Run(s Scenario) {
	s.Given()
	s.When()
	s.Then()
}

// It registers a ginkgo spec that runs a fresh scenario built by newScenario.
func It(text string, newScenario func() Scenario) bool {
	return ginkgo.It(text, func() {
		Run(newScenario())
	})
}
