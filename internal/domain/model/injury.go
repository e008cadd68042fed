package model

import "strings"

// InjuryStatus is the enumerated injury severity attached to a candidate.
// The zero value means no designation.
type InjuryStatus string

const (
	InjuryNone         InjuryStatus = ""
	InjuryQuestionable InjuryStatus = "QUESTIONABLE"
	InjuryDoubtful     InjuryStatus = "DOUBTFUL"
	InjuryOut          InjuryStatus = "OUT"
	InjuryIR           InjuryStatus = "IR"
	InjuryPUP          InjuryStatus = "PUP"
	InjurySuspended    InjuryStatus = "SUSPENDED"
)

// ParseInjuryStatus normalizes a raw status string. Unknown strings map to
// InjuryNone: absence of a recognized designation is not an error.
func ParseInjuryStatus(s string) InjuryStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Q", "QUESTIONABLE":
		return InjuryQuestionable
	case "D", "DOUBTFUL":
		return InjuryDoubtful
	case "O", "OUT":
		return InjuryOut
	case "IR":
		return InjuryIR
	case "PUP":
		return InjuryPUP
	case "SUS", "SUSPENDED":
		return InjurySuspended
	}
	return InjuryNone
}

// Risk maps the status to a penalty weight: 1.0 for the out class, 0.6 for
// game-time designations, 0 otherwise.
func (s InjuryStatus) Risk() float64 {
	switch s {
	case InjuryOut, InjuryIR, InjuryPUP, InjurySuspended:
		return 1.0
	case InjuryQuestionable, InjuryDoubtful:
		return 0.6
	}
	return 0.0
}

// Adverse reports whether the status contributes to role uncertainty during
// tiering. DOUBTFUL is deliberately excluded: it is a short-horizon game
// designation, not a role signal.
func (s InjuryStatus) Adverse() bool {
	switch s {
	case InjuryOut, InjuryIR, InjuryPUP, InjurySuspended, InjuryQuestionable:
		return true
	}
	return false
}
