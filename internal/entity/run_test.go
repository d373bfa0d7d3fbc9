package entity

import "testing"

func TestRunStatusFinished(t *testing.T) {
	cases := map[RunStatus]bool{
		RunPending:   false,
		RunRunning:   false,
		RunCompleted: true,
		RunStopped:   true,
		RunFailed:    true,
	}
	for status, want := range cases {
		if got := status.Finished(); got != want {
			t.Fatalf("%s: expected finished=%v, got %v", status, want, got)
		}
	}
}
