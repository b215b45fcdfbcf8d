package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariant_IsIndel(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		alt  string
		want bool
	}{
		{"SNV", "A", "G", false},
		{"deletion", "AGTA", "A", true},
		{"insertion", "A", "AGTA", true},
		{"MNV same length", "AT", "GC", false},
		{"padded deletion", "CTT", "CT", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Variant{Ref: tt.ref, Alt: tt.alt}
			assert.Equal(t, tt.want, v.IsIndel())
		})
	}
}
