package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func TestOk(t *testing.T) {
	r := Ok(42)

	assert.True(t, r.IsOk())
	assert.False(t, r.IsErr())
	assert.Equal(t, 42, r.Value())
}

func TestErr(t *testing.T) {
	r := Err[int](errBoom)

	assert.False(t, r.IsOk())
	assert.True(t, r.IsErr())
	assert.Equal(t, errBoom, r.Err())
}

func TestValuePanicsOnFailure(t *testing.T) {
	r := Err[int](errBoom)

	assert.Panics(t, func() { r.Value() })
}

func TestErrPanicsOnSuccess(t *testing.T) {
	r := Ok("hello")

	assert.Panics(t, func() { r.Err() })
}

func TestUnpack(t *testing.T) {
	value, err := Ok("hello").Unpack()
	assert.NoError(t, err)
	assert.Equal(t, "hello", value)

	value, err = Err[string](errBoom).Unpack()
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, value)
}

func TestGetOrElse(t *testing.T) {
	assert.Equal(t, 42, Ok(42).GetOrElse(0))
	assert.Equal(t, 0, Err[int](errBoom).GetOrElse(0))
}

func TestFold(t *testing.T) {
	onOk := func(v int) string { return "ok" }
	onErr := func(err error) string { return "err" }

	assert.Equal(t, "ok", Fold(Ok(1), onOk, onErr))
	assert.Equal(t, "err", Fold(Err[int](errBoom), onOk, onErr))
}

func TestMap(t *testing.T) {
	double := func(v int) int { return v * 2 }

	mapped := Map(Ok(21), double)
	assert.True(t, mapped.IsOk())
	assert.Equal(t, 42, mapped.Value())

	mappedErr := Map(Err[int](errBoom), double)
	assert.True(t, mappedErr.IsErr())
	assert.Equal(t, errBoom, mappedErr.Err())
}

func TestMapChangesType(t *testing.T) {
	length := func(s string) int { return len(s) }

	mapped := Map(Ok("hello"), length)
	assert.Equal(t, 5, mapped.Value())
}

func TestZeroValueIsFailure(t *testing.T) {
	var r Result[int]

	assert.True(t, r.IsErr())
	assert.Nil(t, r.Err())
}
