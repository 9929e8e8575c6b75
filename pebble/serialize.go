package pebble

import (
	"fmt"

	"github.com/Vvlad1slavV/imitation"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var e EntropyReward
	serializer.RegisterTypedDeserializer(e.SerializerType(), DeserializeEntropyReward)
}

// DeserializeEntropyReward deserializes an EntropyReward.
//
// The result has no replay buffer, so SetReplayBuffer must
// be called before exploration rewards can be computed.
func DeserializeEntropyReward(d []byte) (e *EntropyReward, err error) {
	defer essentials.AddCtxTo("deserialize EntropyReward", &err)
	var phase, k int
	var stats *imitation.RunningNorm
	var shapeData []byte
	var learned serializer.Serializer
	if err := serializer.DeserializeAny(d, &phase, &k, &stats, &shapeData,
		&learned); err != nil {
		return nil, err
	}
	if !Phase(phase).valid() {
		return nil, fmt.Errorf("invalid phase: %d", phase)
	}
	if k <= 0 {
		return nil, fmt.Errorf("invalid nearest neighbor k: %d", k)
	}
	learnedFn, ok := learned.(imitation.RewardFn)
	if !ok {
		return nil, fmt.Errorf("not a reward function: %T", learned)
	}
	shape, err := deserializeShape(shapeData)
	if err != nil {
		return nil, err
	}
	return &EntropyReward{
		learned:  learnedFn,
		k:        k,
		stats:    stats,
		phase:    Phase(phase),
		obsShape: shape,
	}, nil
}

// SerializerType returns the unique ID used to serialize
// an EntropyReward with the serializer package.
func (e *EntropyReward) SerializerType() string {
	return "github.com/Vvlad1slavV/imitation/pebble.EntropyReward"
}

// Serialize serializes everything except the replay
// buffer and the Logger.
//
// This fails if the learned reward function does not
// implement serializer.Serializer.
func (e *EntropyReward) Serialize() (d []byte, err error) {
	defer essentials.AddCtxTo("serialize EntropyReward", &err)
	learned, ok := e.learned.(serializer.Serializer)
	if !ok {
		return nil, fmt.Errorf("learned reward function is not serializable: %T",
			e.learned)
	}
	shapeData, err := serializeShape(e.obsShape)
	if err != nil {
		return nil, err
	}
	return serializer.SerializeAny(int(e.phase), e.k, e.stats, shapeData, learned)
}

func serializeShape(shape []int) ([]byte, error) {
	dims := make([]interface{}, len(shape))
	for i, x := range shape {
		dims[i] = x
	}
	dimData, err := serializer.SerializeAny(dims...)
	if err != nil {
		return nil, err
	}
	return serializer.SerializeAny(len(shape), dimData)
}

func deserializeShape(d []byte) ([]int, error) {
	var numDims int
	var dimData []byte
	if err := serializer.DeserializeAny(d, &numDims, &dimData); err != nil {
		return nil, essentials.AddCtx("deserialize shape", err)
	}
	if numDims == 0 {
		return nil, nil
	}
	shape := make([]int, numDims)
	dims := make([]interface{}, numDims)
	for i := range shape {
		dims[i] = &shape[i]
	}
	if err := serializer.DeserializeAny(dimData, dims...); err != nil {
		return nil, essentials.AddCtx("deserialize shape", err)
	}
	return shape, nil
}
