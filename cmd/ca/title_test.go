package main

import (
	"strings"
	"testing"
)

func TestWindowTitle(t *testing.T) {
	got := windowTitle("boids")
	if got != "antflock - boids" {
		t.Fatalf("unexpected title %q", got)
	}
	if strings.ContainsAny(got, "\u2013\u2014") {
		t.Fatalf("title %q contains a dash outside ASCII", got)
	}
}
