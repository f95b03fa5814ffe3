package bootstrap

import "testing"

func TestPageClientHasNoDeadline(t *testing.T) {
	t.Parallel()
	if c := newPageClient(); c.Timeout != 0 {
		t.Fatalf("page loads must not time out, got %v", c.Timeout)
	}
}
