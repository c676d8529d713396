package jsonerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngjson/ngjson/internal/jsonerr"
)

func TestPositionString(t *testing.T) {
	p := jsonerr.Position{Line: 3, Column: 7}
	require.Equal(t, "3:7", p.String())
}

func TestCodeString(t *testing.T) {
	require.Equal(t, "expected `:`", jsonerr.ExpectedColon.String())
	require.Equal(t, "unknown error", jsonerr.Code(-1).String())
}

func TestNewHasNoDetailOrWrapped(t *testing.T) {
	err := jsonerr.New(jsonerr.InvalidNumber, jsonerr.Position{Line: 1, Column: 4})
	require.Equal(t, "invalid number at 1:4", err.Error())
	require.Nil(t, err.Unwrap())
}

func TestNewfFormatsDetail(t *testing.T) {
	err := jsonerr.Newf(jsonerr.MissingField, jsonerr.Position{Line: 2, Column: 0}, "field %q", "name")
	require.Equal(t, `missing field at 2:0: field "name"`, err.Error())
}

func TestWrapCarriesCauseAndUnwraps(t *testing.T) {
	cause := errors.New("disk exploded")
	err := jsonerr.Wrap(jsonerr.Position{Line: 5, Column: 1}, cause)
	require.Equal(t, jsonerr.IoError, err.Code)
	require.Equal(t, "I/O error at 5:1: disk exploded", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestSyntaxErrorIsStandardError(t *testing.T) {
	var target *jsonerr.SyntaxError
	err := jsonerr.New(jsonerr.TrailingCharacters, jsonerr.Position{})
	wrapped := errors.New("context: " + err.Error())
	require.False(t, errors.As(wrapped, &target))
	require.True(t, errors.As(error(err), &target))
}
