package onboarding

import (
	"fmt"
	"strconv"
)

// Phase is the ordered lifecycle stage of an onboarding
type Phase int

const (
	Stage1 Phase = iota + 1
	Stage2
	Stage3
	Stage4
	Stage5
	Stage6
	Stage7
	Stage8
	Live
)

// String renders the phase the way users see it: "1" through "8", then "Live"
func (p Phase) String() string {
	if p == Live {
		return "Live"
	}
	if p >= Stage1 && p <= Stage8 {
		return strconv.Itoa(int(p))
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// IsValid reports whether p is a known phase
func (p Phase) IsValid() bool {
	return p >= Stage1 && p <= Live
}

// ParsePhase parses the user-facing phase label
func ParsePhase(s string) (Phase, error) {
	if s == "Live" {
		return Live, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(Stage1) || n > int(Stage8) {
		return 0, fmt.Errorf("invalid onboarding phase %q", s)
	}
	return Phase(n), nil
}

// tier pairs a phase with the milestone predicate that unlocks it
type tier struct {
	phase   Phase
	reached func(Milestones) bool
}

var tiers = []tier{
	{Stage2, Milestones.ServiceDefined},
	{Stage3, Milestones.OrganizationProfiled},
	{Stage4, Milestones.SoftwareConfigured},
	{Stage5, Milestones.HardwareOrdered},
	{Stage6, Milestones.MerchandiseReady},
	{Stage7, Milestones.RegistrationReady},
	{Stage8, Milestones.ParentsInvited},
	{Live, Milestones.WentLive},
}

// ComputePhase returns the highest phase whose predicate holds. Lower tiers
// are not required, so an onboarding can report phase 5 while phase 2 is
// still incomplete.
func ComputePhase(m Milestones) Phase {
	phase := Stage1
	for _, t := range tiers {
		if t.reached(m) {
			phase = t.phase
		}
	}
	return phase
}

// ComputePhaseStrict returns the highest phase reached without skipping a
// tier: phase N requires the predicates of every phase below it.
func ComputePhaseStrict(m Milestones) Phase {
	phase := Stage1
	for _, t := range tiers {
		if !t.reached(m) {
			break
		}
		phase = t.phase
	}
	return phase
}

// PhaseFunc computes a phase from milestones
type PhaseFunc func(Milestones) Phase

// PhaseFuncFor selects the phase rule
func PhaseFuncFor(strict bool) PhaseFunc {
	if strict {
		return ComputePhaseStrict
	}
	return ComputePhase
}
