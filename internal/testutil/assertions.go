// Package testutil provides common test utilities and assertions for the
// runtime's tests.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// AssertWithin asserts that v lies in [lo, hi].
func AssertWithin(t *testing.T, v, lo, hi float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.GreaterOrEqual(t, v, lo, msgAndArgs...)
	assert.LessOrEqual(t, v, hi, msgAndArgs...)
}

// RequireCalls asserts the recorded call names, in order.
func RequireCalls(t *testing.T, rec *Recorder, names ...string) {
	t.Helper()
	require.Equal(t, names, rec.Names())
}
