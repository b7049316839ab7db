package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/container"
)

type testData struct {
}

func (t testData) Length() float64 {
	return 0
}

func TestListInit(t *testing.T) {
	l := &container.List[testData]{}
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())
	assert.Equal(t, 0, l.Len())
}

func TestListOperation(t *testing.T) {
	l := &container.List[testData]{}

	// test: insert

	// ^, 1, ^
	n1 := &container.ListNode[testData]{
		S:     1,
		Value: testData{},
	}
	l.PushBack(n1)
	// ^, 2, 1, ^
	n2 := &container.ListNode[testData]{
		S:     2,
		Value: testData{},
	}
	l.PushFront(n2)
	// ^, 3, 2, 1, ^
	n3 := &container.ListNode[testData]{
		S:     3,
		Value: testData{},
	}
	n2.InsertBefore(n3)
	// ^, 3, 2, 1, 4, ^
	n4 := &container.ListNode[testData]{
		S:     4,
		Value: testData{},
	}
	n1.InsertAfter(n4)
	assert.Equal(t, 4, l.Len())

	// test: first last next prev

	assert.Equal(t, n3, l.First())
	assert.Equal(t, n4, l.Last())
	assert.Equal(t, n2, n3.Next())
	assert.Equal(t, n1, n2.Next())
	assert.Equal(t, n4, n1.Next())
	assert.Nil(t, n4.Next())
	assert.Equal(t, n1, n4.Prev())
	assert.Nil(t, n3.Prev())
	assert.Equal(t, []float64{3, 2, 1, 4}, l.Keys())

	// test: remove

	l.Remove(n3)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, n2, l.First())
	assert.Nil(t, n3.Parent())
	l.Remove(n4)
	assert.Equal(t, n1, l.Last())
	assert.Equal(t, []float64{2, 1}, l.Keys())

	// test: reuse removed node

	l.PushBack(n3)
	assert.Equal(t, []float64{2, 1, 3}, l.Keys())
	assert.Equal(t, l, n3.Parent())
}
