package imitation

import (
	"fmt"

	"github.com/unixpickle/anyvec"
)

// ShapeSize computes the number of components in a single
// observation of the given shape.
//
// An empty shape describes a scalar, so its size is 1.
func ShapeSize(shape []int) int {
	size := 1
	for _, x := range shape {
		if x < 0 {
			panic(fmt.Sprintf("negative dimension in shape %v", shape))
		}
		size *= x
	}
	return size
}

// VectorComponents returns the components of a vector as
// float64 values.
//
// The result may alias the vector's data for []float64
// vectors, so it should not be modified.
func VectorComponents(vec anyvec.Vector) []float64 {
	switch data := vec.Data().(type) {
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res
	case []float64:
		return data
	default:
		panic(fmt.Sprintf("unsupported numeric list: %T", data))
	}
}

// ComponentsVector creates a vector from float64 values
// using the given creator.
func ComponentsVector(c anyvec.Creator, comps []float64) anyvec.Vector {
	return c.MakeVectorData(c.MakeNumericList(comps))
}

// splitRows cuts packed components into rows of rowSize
// components each.
func splitRows(comps []float64, rowSize int) ([][]float64, error) {
	if rowSize <= 0 {
		return nil, fmt.Errorf("invalid row size: %d", rowSize)
	}
	if len(comps)%rowSize != 0 {
		return nil, fmt.Errorf("length %d not divisible by row size %d",
			len(comps), rowSize)
	}
	rows := make([][]float64, len(comps)/rowSize)
	for i := range rows {
		rows[i] = comps[i*rowSize : (i+1)*rowSize]
	}
	return rows, nil
}
