// ABOUTME: End-to-end tests running the real binary: quit keys, following, persistence
// ABOUTME: Skipped in short mode since they build the binary and use a pty

package e2e

import (
	"testing"
	"time"
)

func TestDashboard_QuitKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}
	srv := statusServer(t)

	tests := []struct {
		name string
		quit func(t *testing.T, s *session)
	}{
		{"q", func(t *testing.T, s *session) { s.send(t, "q") }},
		{"ctrl+c", func(t *testing.T, s *session) { s.sendCtrl(t, 'c') }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startDashboard(t, srv.URL)
			defer s.close()

			s.expectStringTimeout(t, "Accounts", 5*time.Second)
			s.expectStringTimeout(t, "q: quit", 5*time.Second)
			tt.quit(t, s)
			if err := s.waitExit(t, 5*time.Second); err != nil {
				t.Errorf("exit: %v", err)
			}
		})
	}
}

func TestDashboard_FollowShowsPosts(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}
	srv := statusServer(t)
	s := startDashboard(t, srv.URL)
	defer s.close()

	s.expectStringTimeout(t, "Accounts", 5*time.Second)
	s.send(t, "f")
	s.expectStringTimeout(t, "Follow", 5*time.Second)
	s.typeText(t, "alice")
	s.send(t, "\r", "j")

	s.expectStringTimeout(t, "2024-05-01,first from alice", 5*time.Second)
	s.expectStringTimeout(t, "2024-05-02,second from alice", 5*time.Second)

	s.send(t, "q")
	if err := s.waitExit(t, 5*time.Second); err != nil {
		t.Errorf("exit: %v", err)
	}
}

func TestDashboard_FailedFetchIsMarked(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}
	srv := statusServer(t)
	s := startDashboard(t, srv.URL)
	defer s.close()

	s.expectStringTimeout(t, "Accounts", 5*time.Second)
	s.send(t, "f")
	s.typeText(t, "ghost")
	s.send(t, "\r", "j")

	s.expectStringTimeout(t, "fetch failed", 5*time.Second)
	s.send(t, "q")
	s.waitExit(t, 5*time.Second)
}

func TestDashboard_PrintKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}
	srv := statusServer(t)
	s := startDashboard(t, srv.URL, "--keys")
	defer s.close()

	s.expectStringTimeout(t, "Keybindings:", 5*time.Second)
	s.expectStringTimeout(t, "quit", 5*time.Second)
	if err := s.waitExit(t, 5*time.Second); err != nil {
		t.Errorf("exit: %v", err)
	}
}

func TestDashboard_PastedHandle(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}
	srv := statusServer(t)
	s := startDashboard(t, srv.URL)
	defer s.close()

	s.expectStringTimeout(t, "Accounts", 5*time.Second)
	s.send(t, "f")
	s.expectStringTimeout(t, "Follow", 5*time.Second)
	// The whole handle and Enter arrive in a single write.
	s.send(t, "carol\r", "j")

	s.expectStringTimeout(t, "2024-05-02,second from carol", 5*time.Second)
	s.send(t, "q")
	if err := s.waitExit(t, 5*time.Second); err != nil {
		t.Errorf("exit: %v", err)
	}
}
