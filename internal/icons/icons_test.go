package icons

import (
	"testing"

	"github.com/example/workmux/internal/multiplexer"
)

func TestFallbackStatusForStatus(t *testing.T) {
	if got := FallbackStatus.ForStatus(multiplexer.StatusWaiting); got != "?" {
		t.Fatalf("got %q", got)
	}
}

func TestFallbackPRForStateDraftOverridesState(t *testing.T) {
	if got := FallbackPR.ForState(PRStateOpen, true); got != FallbackPR.Draft {
		t.Fatalf("expected draft icon, got %q", got)
	}
}

func TestFallbackPRForStateMerged(t *testing.T) {
	if got := FallbackPR.ForState(PRStateMerged, false); got != "◆" {
		t.Fatalf("got %q", got)
	}
}
