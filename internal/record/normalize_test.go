package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"insulin", "insulin"},
		{"Insulin", "insulin"},
		{"INSULIN", "insulin"},
		{"  Insulin  ", "insulin"},
		{"Trinkwasser", "trinkwasser"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ItemKey(tt.in), "ItemKey(%q)", tt.in)
	}
}

func TestItemKey_FoldsEqualNames(t *testing.T) {
	require.Equal(t, ItemKey("Insulin"), ItemKey("insulin"))
	require.Equal(t, ItemKey("WATER"), ItemKey("water"))
}
