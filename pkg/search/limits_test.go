package search

import (
	"testing"
	"time"
)

func TestDeadlineDisabledByDefault(t *testing.T) {
	d := newDeadline(0)
	if d.expired() {
		t.Error("a zero-duration deadline reported expired")
	}
}

func TestDeadlineExpires(t *testing.T) {
	d := newDeadline(time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if !d.expired() {
		t.Error("deadline did not expire after its duration elapsed")
	}
}

func TestDeadlineNotYetExpired(t *testing.T) {
	d := newDeadline(time.Hour)
	if d.expired() {
		t.Error("a deadline far in the future reported expired")
	}
}
