package imitation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
)

func TestReplayBufferRewardWrapperAdd(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	buf := &sliceBuffer{Creator: c}
	fn := RewardFunc(func(state, action, nextState anyvec.Vector,
		done []bool) (anyvec.Vector, error) {
		comps := VectorComponents(state)
		return ComponentsVector(c, []float64{comps[0] + comps[1], comps[2] + comps[3]}), nil
	})
	w := NewReplayBufferRewardWrapper(buf, []int{2}, fn)

	obs := ComponentsVector(c, []float64{1, 2, 3, 4})
	err := w.Add(obs, obs.Copy(), c.MakeVector(2), []bool{false, true})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(buf.Rewards, []float64{3, 7}) {
		t.Errorf("unexpected rewards: %v", buf.Rewards)
	}
	if !reflect.DeepEqual(buf.Done, []bool{false, true}) {
		t.Errorf("unexpected done flags: %v", buf.Done)
	}
	testComponentsEquiv(t, w.BufferView().Observations(), []float64{1, 2, 3, 4})
}

func TestReplayBufferRewardWrapperNotify(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	fn := &awareReward{}
	buf1 := &sliceBuffer{Creator: c}
	w := NewReplayBufferRewardWrapper(buf1, []int{3, 2}, fn)

	if fn.Notified != 1 {
		t.Fatalf("expected 1 notification but got %d", fn.Notified)
	}
	if !reflect.DeepEqual(fn.Shape, []int{3, 2}) {
		t.Errorf("unexpected shape: %v", fn.Shape)
	}
	if _, ok := fn.View.(Buffer); ok {
		t.Error("view should not expose Add")
	}

	buf2 := &sliceBuffer{Creator: c, Obs: []float64{1, 2, 3, 4, 5, 6}}
	w.Reinitialize(buf2)
	if fn.Notified != 2 {
		t.Fatalf("expected 2 notifications but got %d", fn.Notified)
	}
	testComponentsEquiv(t, fn.View.Observations(), buf2.Obs)

	w.ObservationShape()[0] = 100
	if w.ObservationShape()[0] != 3 {
		t.Error("shape should be copied")
	}
}

func TestReplayBufferRewardWrapperErrors(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	buf := &sliceBuffer{Creator: c}
	obs := c.MakeVector(4)

	badCount := RewardFunc(func(state, action, nextState anyvec.Vector,
		done []bool) (anyvec.Vector, error) {
		return c.MakeVector(1), nil
	})
	w := NewReplayBufferRewardWrapper(buf, []int{2}, badCount)
	if err := w.Add(obs, obs, c.MakeVector(2), []bool{false, false}); err == nil {
		t.Error("expected reward count error")
	}

	rewardErr := errors.New("reward failed")
	failing := RewardFunc(func(state, action, nextState anyvec.Vector,
		done []bool) (anyvec.Vector, error) {
		return nil, rewardErr
	})
	w = NewReplayBufferRewardWrapper(buf, []int{2}, failing)
	if err := w.Add(obs, obs, c.MakeVector(2), []bool{false, false}); err == nil {
		t.Error("expected reward error")
	}
	if len(buf.Rewards) != 0 {
		t.Error("failed adds should not store transitions")
	}

	noRewards := RewardFunc(func(state, action, nextState anyvec.Vector,
		done []bool) (anyvec.Vector, error) {
		return nil, nil
	})
	w = NewReplayBufferRewardWrapper(buf, []int{2}, noRewards)
	if err := w.Add(obs, obs, c.MakeVector(2), []bool{false, false}); err == nil {
		t.Error("expected error for missing rewards")
	}
	if len(buf.Rewards) != 0 {
		t.Error("failed adds should not store transitions")
	}
}

type sliceBuffer struct {
	Creator anyvec.Creator
	Obs     []float64
	Rewards []float64
	Done    []bool
}

func (s *sliceBuffer) Observations() anyvec.Vector {
	return ComponentsVector(s.Creator, s.Obs)
}

func (s *sliceBuffer) Add(obs, nextObs, action, reward anyvec.Vector, done []bool) error {
	s.Obs = append(s.Obs, VectorComponents(obs)...)
	s.Rewards = append(s.Rewards, VectorComponents(reward)...)
	s.Done = append(s.Done, done...)
	return nil
}

type awareReward struct {
	Notified int
	View     ReplayBufferView
	Shape    []int
}

func (a *awareReward) Reward(state, action, nextState anyvec.Vector,
	done []bool) (anyvec.Vector, error) {
	return state.Creator().MakeVector(len(done)), nil
}

func (a *awareReward) OnReplayBufferInitialized(w ReplayBufferWrapper) {
	a.Notified++
	a.View = w.BufferView()
	a.Shape = w.ObservationShape()
}
