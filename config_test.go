package duocache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions_DefaultsToNoopLogger(t *testing.T) {
	o := applyOptions(nil)
	require.NotNil(t, o.logger)
}

func TestWithLogger_NilFallsBackToNoop(t *testing.T) {
	o := applyOptions([]Option{WithLogger(nil)})
	assert.NotNil(t, o.logger)
}

func TestWithLogger_CustomLoggerIsUsed(t *testing.T) {
	custom := NewTextLogger(0)
	o := applyOptions([]Option{WithLogger(custom)})
	assert.Same(t, custom, o.logger)
}
