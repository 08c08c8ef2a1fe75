package csrf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		want     bool
	}{
		{"identical", "abc-def", "abc-def", true},
		{"both empty", "", "", true},
		{"differ first byte", "xbc-def", "abc-def", false},
		{"differ last byte", "abc-dex", "abc-def", false},
		{"actual shorter", "abc", "abc-def", false},
		{"actual longer", "abc-def-", "abc-def", false},
		{"actual is prefix", "abc-de", "abc-def", false},
		{"empty actual", "", "abc", false},
		{"empty expected", "abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal([]byte(tt.actual), []byte(tt.expected)))
			assert.Equal(t, tt.want, EqualString(tt.actual, tt.expected))
		})
	}
}

func TestEqual_NilSlices(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(nil, []byte{}))
	assert.False(t, Equal(nil, []byte{0}))
}

func TestLengthsEqual(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{0, 0, 1},
		{5, 5, 1},
		{5, 6, 0},
		{1 << 20, 1 << 20, 1},
		{1 << 16, 1 << 17, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lengthsEqual(tt.a, tt.b), "lengthsEqual(%d, %d)", tt.a, tt.b)
	}
}

func BenchmarkEqual(b *testing.B) {
	x := []byte("loyw3v28-Sp5S2HvW-VV0ZStW3LNhD9ELehQVwzTBK7IsVV0ZStW3LNhD9ELehQ")
	y := []byte("loyw3v28-Sp5S2HvW-VV0ZStW3LNhD9ELehQVwzTBK7IsVV0ZStW3LNhD9ELehX")
	for i := 0; i < b.N; i++ {
		Equal(x, y)
	}
}
