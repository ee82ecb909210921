package cmd

import (
	"errors"
	"testing"

	"github.com/schedbot/schedbot/internal/instrumentation"
)

func TestAuthResult(t *testing.T) {
	if got := authResult(nil); got != instrumentation.OAuthResultSuccess {
		t.Errorf("authResult(nil) = %q, want %q", got, instrumentation.OAuthResultSuccess)
	}

	if got := authResult(errors.New("exchange failed")); got != instrumentation.OAuthResultFailure {
		t.Errorf("authResult(err) = %q, want %q", got, instrumentation.OAuthResultFailure)
	}
}
