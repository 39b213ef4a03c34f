package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftDelete_Lifecycle(t *testing.T) {
	var s SoftDelete
	assert.False(t, s.IsDeleted())
	assert.Nil(t, s.GetDeletedAt())

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkDeleted(at))
	assert.True(t, s.IsDeleted())
	assert.Equal(t, at, *s.GetDeletedAt())

	err := s.MarkDeleted(at.Add(time.Hour))
	assert.True(t, errors.Is(err, ErrAlreadyDeleted))
	assert.Equal(t, at, *s.GetDeletedAt(), "second delete must not move the timestamp")

	require.NoError(t, s.ClearDeleted())
	assert.False(t, s.IsDeleted())

	err = s.ClearDeleted()
	assert.True(t, errors.Is(err, ErrAlreadyActive))
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	specific := ErrNotFound.Withf("producto %d not found", 7)

	assert.True(t, errors.Is(specific, ErrNotFound))
	assert.False(t, errors.Is(specific, ErrForbidden))
	assert.Equal(t, "producto 7 not found", specific.Error())
	assert.Equal(t, CodeNotFound, specific.Code)

	var de *DomainError
	wrapped := errors.Join(errors.New("ctx"), specific)
	require.True(t, errors.As(wrapped, &de))
	assert.Equal(t, CodeNotFound, de.Code)
}
