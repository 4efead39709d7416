package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringHash(t *testing.T) {
	assert.Equal(t, int32(99162322), stringHash("hello"))
	assert.Equal(t, int32(0), stringHash(""))
}

func TestRemoteProductID_KnownValues(t *testing.T) {
	tests := []struct {
		url, name string
		price     float64
		expected  string
	}{
		{"https://shop/x", "Pommes Schale", 2.9, "remote-1822643432"},
		{"", "Käse", 10, "remote-3202072182"},
		{"https://shop/y", "Becher", 0.35, "remote-4075845754"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, remoteProductID(tt.url, tt.name, tt.price))
		})
	}
}

func TestRemoteProductID_DependsOnContent(t *testing.T) {
	base := remoteProductID("u", "n", 1.5)

	assert.Equal(t, base, remoteProductID("u", "n", 1.5))
	assert.NotEqual(t, base, remoteProductID("u", "n", 1.6))
	assert.NotEqual(t, base, remoteProductID("u2", "n", 1.5))
	assert.True(t, isRemoteID(base))
	assert.False(t, isRemoteID("8c7b1f0e-1111-4f57-9a55-2d1b6c1d9e01"))
}

func TestFormatHashPrice(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0.0"},
		{10, "10.0"},
		{2.95, "2.95"},
		{0.001, "0.001"},
		{1234567.5, "1234567.5"},
		{1e7, "1.0E7"},
		{12345678.9, "1.23456789E7"},
		{0.0001, "1.0E-4"},
		{-3, "-3.0"},
		{math.Inf(1), "Infinity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatHashPrice(tt.in))
	}
}
