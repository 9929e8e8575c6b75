// Package pebble implements the reward schedule of PEBBLE,
// which pre-trains a policy on an unsupervised state
// entropy bonus before switching to a learned reward.
// See https://arxiv.org/abs/2106.05091.
package pebble

import (
	"errors"
	"fmt"

	"github.com/Vvlad1slavV/imitation"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/stat"
)

// DefaultNearestNeighborK is the neighbor count used by
// NewEntropyReward when it is passed 0.
const DefaultNearestNeighborK = 5

// ErrNoReplayBuffer is returned when an entropy reward is
// requested before a replay buffer was supplied.
var ErrNoReplayBuffer = errors.New("replay buffer must be supplied before " +
	"entropy reward can be used")

// EntropyReward is a reward function which moves through
// the phases described by Phase.
//
// During UnsupervisedExploration, the reward for a state
// is its normalized state entropy with respect to the
// observations in a replay buffer.
// In every other phase, the learned reward function is
// used as-is.
//
// The replay buffer must be supplied with SetReplayBuffer
// or OnReplayBufferInitialized before exploration rewards
// can be computed.
//
// An EntropyReward is not thread-safe.
type EntropyReward struct {
	// Logger, if non-nil, is notified about phase
	// transitions and entropy batches.
	// It is not serialized.
	Logger Logger

	learned imitation.RewardFn
	k       int
	stats   *imitation.RunningNorm
	phase   Phase

	// bufferView is not owned and is never serialized.
	bufferView imitation.ReplayBufferView
	obsShape   []int
}

// NewEntropyReward creates an EntropyReward in the
// LearningStart phase.
//
// The k argument is the nearest neighbor used for the
// entropy estimate (see imitation.StateEntropy).
// If it is 0, DefaultNearestNeighborK is used.
func NewEntropyReward(learned imitation.RewardFn, k int) *EntropyReward {
	if learned == nil {
		panic("nil learned reward function")
	}
	if k < 0 {
		panic(fmt.Sprintf("invalid nearest neighbor k: %d", k))
	} else if k == 0 {
		k = DefaultNearestNeighborK
	}
	return &EntropyReward{
		learned: learned,
		k:       k,
		stats:   imitation.NewRunningNorm(),
		phase:   LearningStart,
	}
}

// Phase returns the current phase.
func (e *EntropyReward) Phase() Phase {
	return e.phase
}

// NearestNeighborK returns the neighbor index used for
// entropy estimates.
func (e *EntropyReward) NearestNeighborK() int {
	return e.k
}

// LearnedRewardFn returns the reward function used outside
// of unsupervised exploration.
func (e *EntropyReward) LearnedRewardFn() imitation.RewardFn {
	return e.learned
}

// Stats returns the running statistics of the entropy
// values seen so far.
func (e *EntropyReward) Stats() *imitation.RunningNorm {
	return e.stats
}

// StartUnsupervisedExploration switches from LearningStart
// to UnsupervisedExploration.
//
// It panics if the current phase is not LearningStart.
func (e *EntropyReward) StartUnsupervisedExploration() {
	e.advance(LearningStart, UnsupervisedExploration)
}

// FinishUnsupervisedExploration switches from
// UnsupervisedExploration to PolicyAndRewardLearning.
//
// It panics if the current phase is not
// UnsupervisedExploration.
func (e *EntropyReward) FinishUnsupervisedExploration() {
	e.advance(UnsupervisedExploration, PolicyAndRewardLearning)
}

// SetReplayBuffer sets the buffer whose observations are
// used for entropy estimates, along with the shape of a
// single observation.
//
// It should be called again whenever the buffer is
// replaced.
func (e *EntropyReward) SetReplayBuffer(view imitation.ReplayBufferView, obsShape []int) {
	e.bufferView = view
	e.obsShape = append([]int{}, obsShape...)
}

// OnReplayBufferInitialized sets the replay buffer from a
// buffer wrapper.
func (e *EntropyReward) OnReplayBufferInitialized(w imitation.ReplayBufferWrapper) {
	e.SetReplayBuffer(w.BufferView(), w.ObservationShape())
}

// Reward computes the rewards for a batch of transitions.
//
// During UnsupervisedExploration, only state matters and
// the reward is the normalized state entropy.
// This updates the running entropy statistics.
//
// In other phases, the arguments are passed unchanged to
// the learned reward function.
func (e *EntropyReward) Reward(state, action, nextState anyvec.Vector,
	done []bool) (anyvec.Vector, error) {
	if e.phase == UnsupervisedExploration {
		return e.entropyReward(state)
	}
	return e.learned.Reward(state, action, nextState, done)
}

func (e *EntropyReward) entropyReward(state anyvec.Vector) (anyvec.Vector, error) {
	if e.bufferView == nil {
		return nil, ErrNoReplayBuffer
	}
	return e.normalizedEntropy(state)
}

func (e *EntropyReward) normalizedEntropy(state anyvec.Vector) (res anyvec.Vector,
	err error) {
	defer essentials.AddCtxTo("entropy reward", &err)

	for _, dim := range e.obsShape {
		if dim < 0 {
			return nil, fmt.Errorf("negative dimension in observation shape %v",
				e.obsShape)
		}
	}
	obsSize := imitation.ShapeSize(e.obsShape)
	allObs := e.bufferView.Observations()
	if allObs == nil {
		allObs = state.Creator().MakeVector(0)
	}
	if obsSize == 0 || allObs.Len()%obsSize != 0 {
		return nil, fmt.Errorf("buffer of length %d does not fit observation shape %v",
			allObs.Len(), e.obsShape)
	}

	entropies, err := imitation.StateEntropy(state, allObs, obsSize, e.k)
	if err != nil {
		return nil, err
	}
	res = e.stats.UpdateAndNormalize(entropies)

	if e.Logger != nil {
		e.Logger.LogEntropy(entropies.Len(),
			stat.Mean(imitation.VectorComponents(entropies), nil),
			stat.Mean(imitation.VectorComponents(res), nil))
	}
	return res, nil
}

func (e *EntropyReward) advance(from, to Phase) {
	if e.phase != from {
		panic(fmt.Sprintf("cannot enter %s from %s (must be in %s)", to, e.phase, from))
	}
	e.phase = to
	if e.Logger != nil {
		e.Logger.LogPhase(from, to)
	}
}
