package duocache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutResponse_String(t *testing.T) {
	cases := map[PutResponse]string{
		PutSuccess:      "Success",
		PutDisabled:     "Disabled",
		PutInvalidData:  "InvalidData",
		PutError:        "Error",
		PutResponse(99): "PutResponse(99)",
	}
	for resp, want := range cases {
		assert.Equal(t, want, resp.String())
	}
}

func TestConfigError_UnwrapsToErrConfigInvalid(t *testing.T) {
	err := newConfigError("PixelMemoryCacheCapacityMB", -1)
	assert.True(t, errors.Is(err, ErrConfigInvalid))
	assert.Contains(t, err.Error(), "PixelMemoryCacheCapacityMB")
	assert.Contains(t, err.Error(), "-1")
}
