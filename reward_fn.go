package imitation

import "github.com/unixpickle/anyvec"

// A RewardFn computes a batch of rewards for a batch of
// transitions.
//
// Every vector is packed row-major, with one row per
// transition in the batch.
// The resulting vector has one component per row.
type RewardFn interface {
	Reward(state, action, nextState anyvec.Vector, done []bool) (anyvec.Vector, error)
}

// RewardFunc is a RewardFn backed by a function.
type RewardFunc func(state, action, nextState anyvec.Vector,
	done []bool) (anyvec.Vector, error)

// Reward calls r.
func (r RewardFunc) Reward(state, action, nextState anyvec.Vector,
	done []bool) (anyvec.Vector, error) {
	return r(state, action, nextState, done)
}

// A ReplayBufferAwareRewardFn is a RewardFn which reads
// from the replay buffer it is feeding.
//
// OnReplayBufferInitialized is called every time the
// wrapped buffer is (re)created.
type ReplayBufferAwareRewardFn interface {
	RewardFn
	OnReplayBufferInitialized(w ReplayBufferWrapper)
}
