package testutil

import (
	"context"
	"fmt"
	"testing"
)

func TestFakeCommander_ExactMatch(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.Register("setterm --version", "setterm from util-linux 2.39\n", nil)

	out, err := fc.Run(context.Background(), "setterm", "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "setterm from util-linux 2.39\n" {
		t.Errorf("got %q", string(out))
	}
}

func TestFakeCommander_PrefixMatch(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.Register("cc -O3", "", nil)

	if _, err := fc.Run(context.Background(), "cc", "-O3", "-shared", "-o", "x.so"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFakeCommander_NoMatch(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()

	_, err := fc.Run(context.Background(), "unknown", "command")
	if err == nil {
		t.Fatal("expected error for unregistered command")
	}
}

func TestFakeCommander_DefaultResponse(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.DefaultResponse = &Response{Output: []byte("default"), Err: nil}

	out, err := fc.Run(context.Background(), "any", "command")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "default" {
		t.Errorf("got %q, want %q", string(out), "default")
	}
}

func TestFakeCommander_ErrorResponse(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.Register("cc", "rpg/_rpigratings.c:1: error\n", fmt.Errorf("exit status 1"))

	out, err := fc.Run(context.Background(), "cc", "-O3")
	if err == nil {
		t.Fatal("expected error")
	}
	if string(out) != "rpg/_rpigratings.c:1: error\n" {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestFakeCommander_LookPath(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.Register("setterm --version", "", nil)

	p, err := fc.LookPath("setterm")
	if err != nil || p != "/usr/bin/setterm" {
		t.Fatalf("LookPath = %q, %v", p, err)
	}
	if _, err := fc.LookPath("cc"); err == nil {
		t.Fatal("expected not found")
	}
}

func TestFakeCommander_CallTracking(t *testing.T) {
	t.Parallel()

	fc := NewFakeCommander()
	fc.DefaultResponse = &Response{}

	fc.Run(context.Background(), "setterm", "--version")
	fc.Run(context.Background(), "cc", "-O3")
	fc.Run(context.Background(), "cc", "-O2")

	if !fc.Called("setterm") {
		t.Error("expected setterm to be called")
	}
	if fc.CallCount("cc") != 2 {
		t.Errorf("CallCount(cc) = %d, want 2", fc.CallCount("cc"))
	}
	if fc.Called("make") {
		t.Error("make should not be called")
	}
}
