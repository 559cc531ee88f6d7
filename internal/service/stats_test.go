package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.Equal(t, 2.0, mean([]float64{1, 2, 3}))
}

func TestStddev(t *testing.T) {
	assert.Equal(t, 0.0, stddev([]float64{5}))
	assert.Equal(t, 0.0, stddev([]float64{4, 4, 4}))
	assert.InDelta(t, 1.0, stddev([]float64{1, 2, 3}), 0.001)
}

func TestKDA(t *testing.T) {
	assert.Equal(t, 4.0, kda(6, 3, 6))
	assert.Equal(t, 3.0, kda(4, 2, 2))
	assert.Equal(t, 8.0, kda(5, 0, 3))
	assert.Equal(t, 0.0, kda(0, 0, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-3, 0, 10))
	assert.Equal(t, 10.0, clamp(12, 0, 10))
	assert.Equal(t, 7.5, clamp(7.5, 0, 10))
}
