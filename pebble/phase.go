package pebble

import "fmt"

// A Phase determines which reward signal an EntropyReward
// produces.
//
// Phases only ever advance, in the order LearningStart,
// UnsupervisedExploration, PolicyAndRewardLearning.
type Phase int

const (
	// LearningStart is used while the buffer collects
	// enough samples for entropy estimation.
	// Rewards come from the learned reward function.
	LearningStart Phase = iota

	// UnsupervisedExploration uses normalized state
	// entropy as the reward.
	UnsupervisedExploration

	// PolicyAndRewardLearning uses the learned reward
	// function for the rest of training.
	PolicyAndRewardLearning
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case LearningStart:
		return "LearningStart"
	case UnsupervisedExploration:
		return "UnsupervisedExploration"
	case PolicyAndRewardLearning:
		return "PolicyAndRewardLearning"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

func (p Phase) valid() bool {
	return p >= LearningStart && p <= PolicyAndRewardLearning
}
