package apperror

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	err := fmt.Errorf("cast vote: %w", DuplicateVote("already voted"))

	assert.True(t, errors.Is(err, ErrDuplicateVote))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindDuplicateVote, KindOf(err))
	assert.True(t, IsKind(err, KindDuplicateVote))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("connection reset")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestWrapKeepsKind(t *testing.T) {
	cause := errors.New("boom")
	err := NotFound("talent").Wrap(cause)

	assert.Equal(t, KindNotFound, err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "talent not found: boom", err.Error())
}

func TestFromValidation(t *testing.T) {
	assert.NoError(t, FromValidation(nil))

	verr := validation.Errors{"email": errors.New("cannot be blank")}
	err := FromValidation(verr)
	assert.True(t, IsKind(err, KindValidation))

	internal := validation.NewInternalError(errors.New("rule panic"))
	assert.Equal(t, internal, FromValidation(internal))
}

func TestCapacityDetails(t *testing.T) {
	err := Capacity("too many hero slides", 10)
	assert.Equal(t, map[string]int{"limit": 10}, err.Details)
	assert.Equal(t, CodeCapacity, err.Code)
}
