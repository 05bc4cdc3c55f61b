package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name   string
		err    error
		want   apperr.Kind
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"plain error", cause, "", false},
		{"direct", apperr.New(apperr.EventFull, "event is full"), apperr.EventFull, true},
		{"wrapped by fmt", fmt.Errorf("join: %w", apperr.New(apperr.AlreadyExists, "already a member")), apperr.AlreadyExists, true},
		{"with cause", apperr.Wrap(apperr.NotFound, "club not found", cause), apperr.NotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := apperr.KindOf(tt.err)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("KindOf() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("decode failed")
	err := apperr.Wrap(apperr.InvalidInput, "bad body", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !apperr.Is(err, apperr.InvalidInput) {
		t.Error("expected Is(InvalidInput) to be true")
	}
	if apperr.Is(err, apperr.NotFound) {
		t.Error("expected Is(NotFound) to be false")
	}
}

func TestNewf(t *testing.T) {
	err := apperr.Newf(apperr.InvalidInput, "invalid role %q", "owner")
	if err.Message != `invalid role "owner"` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != `InvalidInput: invalid role "owner"` {
		t.Errorf("Error() = %q", err.Error())
	}
}
