package imitation

import (
	"reflect"
	"testing"

	"github.com/unixpickle/anyvec/anyvec32"
)

func TestShapeSize(t *testing.T) {
	cases := []struct {
		shape []int
		size  int
	}{
		{nil, 1},
		{[]int{4}, 4},
		{[]int{3, 2, 5}, 30},
		{[]int{3, 0}, 0},
	}
	for _, c := range cases {
		if actual := ShapeSize(c.shape); actual != c.size {
			t.Errorf("shape %v: expected %d but got %d", c.shape, c.size, actual)
		}
	}
}

func TestVectorComponents(t *testing.T) {
	c := anyvec32.DefaultCreator{}
	vec := c.MakeVectorData([]float32{1, -2.5, 3})
	actual := VectorComponents(vec)
	if !reflect.DeepEqual(actual, []float64{1, -2.5, 3}) {
		t.Errorf("unexpected components: %v", actual)
	}
}
