package prefix

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestComputeUniquePrefixes(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want map[string]int
	}{
		{
			name: "distinct first letters",
			ids:  []string{"kxyz", "lmno", "qrst"},
			want: map[string]int{"kxyz": 1, "lmno": 1, "qrst": 1},
		},
		{
			name: "shared prefixes",
			ids:  []string{"kkmq", "kkzt", "kaaa", "zzzz"},
			want: map[string]int{"kkmq": 3, "kkzt": 3, "kaaa": 2, "zzzz": 1},
		},
		{
			name: "one id is a prefix of another",
			ids:  []string{"ab", "abc"},
			want: map[string]int{"ab": 2, "abc": 3},
		},
		{
			name: "duplicates and empty ids",
			ids:  []string{"abc", "abc", "", "abd"},
			want: map[string]int{"abc": 3, "abd": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeUniquePrefixes(tt.ids)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for id, n := range tt.want {
				if got[id] != n {
					t.Errorf("%s: got %d, want %d", id, got[id], n)
				}
			}
		})
	}
}

func TestIDSet_Format(t *testing.T) {
	set := NewIDSet([]string{"kkmq", "kkzt"})
	plain := lipgloss.NewStyle()

	if got := set.Format("kkmq", plain, plain); got != "kkmq" {
		t.Errorf("got %q, want %q", got, "kkmq")
	}
	if got := set.PrefixLen("unknown"); got != MinPrefixLen {
		t.Errorf("got %d, want %d", got, MinPrefixLen)
	}
}
