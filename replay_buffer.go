package imitation

import (
	"errors"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A ReplayBufferView provides read-only access to the
// observations stored in a replay buffer.
type ReplayBufferView interface {
	// Observations returns every stored observation,
	// packed into one vector.
	//
	// Buffers which store several parallel environments
	// per step pack them into the same vector, so the
	// result can always be viewed as a batch of single
	// observations.
	Observations() anyvec.Vector
}

// A ReplayBufferWrapper exposes a view of a replay buffer
// along with the shape of the observations it stores.
type ReplayBufferWrapper interface {
	BufferView() ReplayBufferView
	ObservationShape() []int
}

// A Buffer is a replay buffer which the training loop
// adds transitions to.
type Buffer interface {
	ReplayBufferView

	// Add stores a batch of transitions, one row per
	// transition.
	Add(obs, nextObs, action, reward anyvec.Vector, done []bool) error
}

// ReplayBufferRewardWrapper relabels the transitions added
// to a Buffer with the rewards from a RewardFn.
//
// If the RewardFn is a ReplayBufferAwareRewardFn, it is
// notified whenever the wrapped buffer is (re)initialized.
type ReplayBufferRewardWrapper struct {
	RewardFn RewardFn

	buffer   Buffer
	obsShape []int
}

// NewReplayBufferRewardWrapper wraps a buffer and notifies
// fn about it if necessary.
func NewReplayBufferRewardWrapper(b Buffer, obsShape []int,
	fn RewardFn) *ReplayBufferRewardWrapper {
	res := &ReplayBufferRewardWrapper{
		RewardFn: fn,
		obsShape: append([]int{}, obsShape...),
	}
	res.Reinitialize(b)
	return res
}

// Reinitialize replaces the wrapped buffer and notifies
// the RewardFn if necessary.
func (r *ReplayBufferRewardWrapper) Reinitialize(b Buffer) {
	r.buffer = b
	if aware, ok := r.RewardFn.(ReplayBufferAwareRewardFn); ok {
		aware.OnReplayBufferInitialized(r)
	}
}

// BufferView returns a read-only view of the buffer.
func (r *ReplayBufferRewardWrapper) BufferView() ReplayBufferView {
	return bufferView{buffer: r.buffer}
}

// ObservationShape returns the shape of a single
// observation.
func (r *ReplayBufferRewardWrapper) ObservationShape() []int {
	return append([]int{}, r.obsShape...)
}

// Add computes rewards for a batch of transitions and
// stores the transitions in the buffer.
//
// Rewards are computed before the transitions are stored,
// so a reward function reading the buffer does not see
// the transitions it is rewarding.
func (r *ReplayBufferRewardWrapper) Add(obs, nextObs, action anyvec.Vector,
	done []bool) (err error) {
	defer essentials.AddCtxTo("add to reward-wrapped buffer", &err)
	if r.buffer == nil {
		return errors.New("no buffer to add to")
	}
	rewards, err := r.RewardFn.Reward(obs, action, nextObs, done)
	if err != nil {
		return err
	}
	if rewards == nil {
		return errors.New("reward function returned no rewards")
	}
	if rewards.Len() != len(done) {
		return errors.New("reward count does not match batch size")
	}
	return r.buffer.Add(obs, nextObs, action, rewards, done)
}

type bufferView struct {
	buffer Buffer
}

func (b bufferView) Observations() anyvec.Vector {
	return b.buffer.Observations()
}
