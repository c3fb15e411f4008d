package models

import "testing"

func TestTransitionInvitation_FromPending(t *testing.T) {
	got, err := TransitionInvitation(InvitationPending, InvitationAccepted)
	if err != nil {
		t.Fatalf("pending -> accepted failed: %v", err)
	}
	if got != InvitationAccepted {
		t.Fatalf("expected accepted, got %s", got)
	}

	got, err = TransitionInvitation(InvitationPending, InvitationDeclined)
	if err != nil {
		t.Fatalf("pending -> declined failed: %v", err)
	}
	if got != InvitationDeclined {
		t.Fatalf("expected declined, got %s", got)
	}
}

func TestTransitionInvitation_TerminalStatesAreSticky(t *testing.T) {
	cases := []struct{ from, to InvitationStatus }{
		{InvitationAccepted, InvitationDeclined},
		{InvitationAccepted, InvitationPending},
		{InvitationDeclined, InvitationAccepted},
		{InvitationDeclined, InvitationPending},
		{InvitationPending, InvitationPending},
	}
	for _, c := range cases {
		got, err := TransitionInvitation(c.from, c.to)
		if err == nil {
			t.Fatalf("%s -> %s should be rejected", c.from, c.to)
		}
		if got != c.from {
			t.Fatalf("%s -> %s mutated status to %s", c.from, c.to, got)
		}
	}
}

func TestTransitionInvitation_UnknownStatus(t *testing.T) {
	if _, err := TransitionInvitation("cancelled", InvitationAccepted); err == nil {
		t.Fatal("unknown source status should be rejected")
	}
	if _, err := TransitionInvitation(InvitationPending, "expired"); err == nil {
		t.Fatal("unknown target status should be rejected")
	}
}

func TestInvitationStatusTerminal(t *testing.T) {
	if InvitationPending.Terminal() {
		t.Fatal("pending must not be terminal")
	}
	if !InvitationAccepted.Terminal() || !InvitationDeclined.Terminal() {
		t.Fatal("accepted and declined must be terminal")
	}
}
