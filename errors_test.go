package engine

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err   error
		init  bool
		frame bool
	}{
		{fmt.Errorf("%w: boom", ErrPlatformInit), true, false},
		{fmt.Errorf("%w: boom", ErrWindowCreate), true, false},
		{fmt.Errorf("%w: boom", ErrDeviceCreate), true, false},
		{fmt.Errorf("%w: boom", ErrClaimWindow), true, false},
		{fmt.Errorf("%w: boom", ErrSwapchainAcquire), false, true},
		{fmt.Errorf("%w: boom", ErrSubmit), false, true},
		{ErrNotRunning, false, false},
		{errors.New("other"), false, false},
		{nil, false, false},
	}
	for _, tt := range tests {
		if got := IsInitFailure(tt.err); got != tt.init {
			t.Errorf("IsInitFailure(%v) = %v, want %v", tt.err, got, tt.init)
		}
		if got := IsFrameFailure(tt.err); got != tt.frame {
			t.Errorf("IsFrameFailure(%v) = %v, want %v", tt.err, got, tt.frame)
		}
	}
}
