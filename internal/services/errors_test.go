package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Permission(MsgPermissionDenied))
	assert.Equal(t, KindPermission, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrForbidden))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, MsgPermissionDenied, PublicMessage(wrapped))

	plain := errors.New("connection reset")
	assert.Equal(t, KindInternal, KindOf(plain))
	assert.Equal(t, MsgInternal, PublicMessage(plain))

	internal := Internal(plain)
	assert.ErrorIs(t, internal, plain)
	assert.Equal(t, MsgInternal, PublicMessage(internal))

	ext := External(MsgGeocodeFailed, plain)
	assert.ErrorIs(t, ext, ErrExternal)
	assert.ErrorIs(t, ext, plain)
	assert.Contains(t, ext.Error(), "connection reset")
}
