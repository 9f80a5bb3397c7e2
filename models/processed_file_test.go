package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStatusValid(t *testing.T) {
	assert.True(t, FileStatusPending.Valid())
	assert.True(t, FileStatusSuccess.Valid())
	assert.True(t, FileStatusFailed.Valid())
	assert.False(t, FileStatus("").Valid())
	assert.False(t, FileStatus("error").Valid())
}
