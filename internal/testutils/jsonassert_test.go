package testutils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingT struct {
	failures []string
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestJSONAsserter(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		opts     []Option
		pass     bool
	}{
		{
			name:     "identical arrays",
			actual:   `[{"name":"a","address":"1"}]`,
			expected: `[{"name":"a","address":"1"}]`,
			pass:     true,
		},
		{
			name:     "key order does not matter",
			actual:   `{"address":"1","name":"a"}`,
			expected: `{"name":"a","address":"1"}`,
			pass:     true,
		},
		{
			name:     "array order matters by default",
			actual:   `[{"address":"2"},{"address":"1"}]`,
			expected: `[{"address":"1"},{"address":"2"}]`,
			pass:     false,
		},
		{
			name:     "array order ignored when requested",
			actual:   `[{"address":"2"},{"address":"1"}]`,
			expected: `[{"address":"1"},{"address":"2"}]`,
			opts:     []Option{WithIgnoreArrayOrder(true)},
			pass:     true,
		},
		{
			name:     "ignored fields",
			actual:   `{"error":{"code":"ERROR","message":"dbus: timeout"}}`,
			expected: `{"error":{"code":"ERROR"}}`,
			opts:     []Option{WithIgnoredFields("message")},
			pass:     true,
		},
		{
			name:     "value mismatch",
			actual:   `{"code":"ERROR"}`,
			expected: `{"code":"NO_BT"}`,
			pass:     false,
		},
		{
			name:     "invalid actual JSON",
			actual:   `not json`,
			expected: `[]`,
			pass:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingT{}
			NewJSONAsserterWithInterface(rec).WithOptions(tt.opts...).Assert(tt.actual, tt.expected)

			if tt.pass {
				assert.Empty(t, rec.failures, "assertion MUST pass")
			} else {
				assert.Len(t, rec.failures, 1, "assertion MUST fail once")
			}
		})
	}
}
