package imitation

import (
	"math"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
	"gonum.org/v1/gonum/stat"
)

// DefaultNormEpsilon is the default value for
// RunningNorm.Epsilon.
const DefaultNormEpsilon = 1e-5

func init() {
	var r RunningNorm
	serializer.RegisterTypedDeserializer(r.SerializerType(), DeserializeRunningNorm)
}

// RunningNorm standardizes a scalar signal using running
// estimates of the signal's mean and variance.
//
// Batches are folded into the statistics with the
// parallel variance update, so the statistics match those
// of every value seen so far regardless of batch sizes.
//
// A RunningNorm is not thread-safe.
type RunningNorm struct {
	// Epsilon is added to the variance before taking the
	// square root, to prevent division by zero.
	//
	// If 0, DefaultNormEpsilon is used.
	Epsilon float64

	mean     float64
	variance float64
	count    int
}

// NewRunningNorm creates a RunningNorm with no samples.
//
// Until the first update, the mean is 0 and the variance
// is 1, making Normalize an identity (up to Epsilon).
func NewRunningNorm() *RunningNorm {
	return &RunningNorm{variance: 1}
}

// DeserializeRunningNorm deserializes a RunningNorm.
func DeserializeRunningNorm(d []byte) (r *RunningNorm, err error) {
	defer essentials.AddCtxTo("deserialize RunningNorm", &err)
	r = &RunningNorm{}
	if err := serializer.DeserializeAny(d, &r.Epsilon, &r.mean, &r.variance,
		&r.count); err != nil {
		return nil, err
	}
	return r, nil
}

// Mean returns the running mean.
func (r *RunningNorm) Mean() float64 {
	return r.mean
}

// Variance returns the running (biased) variance.
func (r *RunningNorm) Variance() float64 {
	return r.variance
}

// Count returns the number of values seen so far.
func (r *RunningNorm) Count() int {
	return r.count
}

// Reset forgets every value seen so far.
func (r *RunningNorm) Reset() {
	r.mean = 0
	r.variance = 1
	r.count = 0
}

// Update folds a batch of values into the statistics.
func (r *RunningNorm) Update(values []float64) {
	if len(values) == 0 {
		return
	}
	batchMean, batchVar := stat.PopMeanVariance(values, nil)
	batchCount := float64(len(values))
	oldCount := float64(r.count)
	totalCount := oldCount + batchCount

	delta := batchMean - r.mean
	r.mean += delta * batchCount / totalCount
	r.variance = (r.variance*oldCount + batchVar*batchCount +
		delta*delta*oldCount*batchCount/totalCount) / totalCount
	r.count += len(values)
}

// Normalize standardizes every component of vec using
// the current statistics.
// It does not modify the statistics.
func (r *RunningNorm) Normalize(vec anyvec.Vector) anyvec.Vector {
	scale := 1 / math.Sqrt(r.variance+r.epsilon())
	comps := VectorComponents(vec)
	res := make([]float64, len(comps))
	for i, x := range comps {
		res[i] = (x - r.mean) * scale
	}
	return ComponentsVector(vec.Creator(), res)
}

// UpdateAndNormalize folds the components of vec into the
// statistics and then normalizes vec with the updated
// statistics.
func (r *RunningNorm) UpdateAndNormalize(vec anyvec.Vector) anyvec.Vector {
	r.Update(VectorComponents(vec))
	return r.Normalize(vec)
}

// SerializerType returns the unique ID used to serialize
// a RunningNorm with the serializer package.
func (r *RunningNorm) SerializerType() string {
	return "github.com/Vvlad1slavV/imitation.RunningNorm"
}

// Serialize serializes the statistics and Epsilon.
func (r *RunningNorm) Serialize() ([]byte, error) {
	return serializer.SerializeAny(r.Epsilon, r.mean, r.variance, r.count)
}

func (r *RunningNorm) epsilon() float64 {
	if r.Epsilon != 0 {
		return r.Epsilon
	}
	return DefaultNormEpsilon
}
