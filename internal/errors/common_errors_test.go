package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "malformed input", errType: ErrTypeMalformedInput, expected: "MALFORMED_INPUT"},
		{name: "storage", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "schema", errType: ErrTypeSchema, expected: "SCHEMA"},
		{name: "render", errType: ErrTypeRender, expected: "RENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    &AppError{Type: ErrTypeStorage, Message: "write failed"},
			wantMessage: "[STORAGE] write failed",
		},
		{
			name:        "error with cause",
			appError:    &AppError{Type: ErrTypeMalformedInput, Message: "cannot parse", Cause: errors.New("wrong number of fields")},
			wantMessage: "[MALFORMED_INPUT] cannot parse: wrong number of fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("persist table", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestNewMalformedInputError(t *testing.T) {
	err := NewMalformedInputError("dados/enem.csv", "inconsistent field count", nil)

	require.NotNil(t, err)
	assert.Equal(t, ErrTypeMalformedInput, err.Type)
	assert.Equal(t, "dados/enem.csv", err.Context["path"])
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError([]string{"IDH"})

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Equal(t, []string{"IDH"}, err.Context["missing"])
}

func TestIsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "direct", err: NewMalformedInputError("a.csv", "bad", nil), want: true},
		{name: "wrapped", err: fmt.Errorf("load exam table: %w", NewMalformedInputError("a.csv", "bad", nil)), want: true},
		{name: "other type", err: NewStorageError("x", nil), want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMalformedInput(tt.err))
		})
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeRender, Message: "chart"}
	err.WithContext("chart", "idh_vs_media")

	assert.Equal(t, "idh_vs_media", err.Context["chart"])
}
