package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "missing uuid",
			err:  NoUUIDOnWireError,
			want: true,
		},
		{
			name: "missing message",
			err:  NoMessageOnWireError,
			want: true,
		},
		{
			name: "wrapped bad request",
			err:  fmt.Errorf("outer: %w", NoUUIDOnWireError),
			want: true,
		},
		{
			name: "other error",
			err:  New("sample"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBadRequest(tt.err))
		})
	}
}
