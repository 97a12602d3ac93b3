package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingInverse(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for i := 0; i < n; i++ {
			assert.Equal(t, i, PrevIndex(NextIndex(i, n), n), "prev(next(%d)) n=%d", i, n)
			assert.Equal(t, i, NextIndex(PrevIndex(i, n), n), "next(prev(%d)) n=%d", i, n)
		}
	}
}

func TestNeighbors(t *testing.T) {
	seq := []string{"A", "B", "C"}

	tests := []struct {
		name     string
		index    int
		wantPrev string
		wantNext string
	}{
		{"first wraps to last", 0, "C", "B"},
		{"middle", 1, "A", "C"},
		{"last wraps to first", 2, "B", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := Neighbors(seq, tt.index)
			assert.Equal(t, tt.wantPrev, prev)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestNeighbors_SingleElement(t *testing.T) {
	prev, next := Neighbors([]string{"only"}, 0)
	assert.Equal(t, "only", prev)
	assert.Equal(t, "only", next)
}

func TestMagnitudeRing(t *testing.T) {
	for b := 1; b <= 9; b++ {
		pos := Navigate(MagnitudeBuckets, b-1)
		wantPrev, wantNext := b-1, b+1
		if b == 1 {
			wantPrev = 9
		}
		if b == 9 {
			wantNext = 1
		}
		assert.Equal(t, b, pos.Current.ID)
		assert.Equal(t, wantPrev, pos.Prev.ID, "bucket %d", b)
		assert.Equal(t, wantNext, pos.Next.ID, "bucket %d", b)
	}
}

func TestDepthRing(t *testing.T) {
	for b := 1; b <= 3; b++ {
		pos := Navigate(DepthBuckets, b-1)
		wantPrev, wantNext := b-1, b+1
		if b == 1 {
			wantPrev = 3
		}
		if b == 3 {
			wantNext = 1
		}
		assert.Equal(t, wantPrev, pos.Prev.ID, "band %d", b)
		assert.Equal(t, wantNext, pos.Next.ID, "band %d", b)
	}
}
