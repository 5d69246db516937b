package httpapi

import (
	"strings"
	"testing"
)

func TestIdentifierPattern(t *testing.T) {
	for _, id := range []string{
		"p1",
		"draft-weekend",
		"cap_andri",
		"7b0c0b2e-3f31-4c5d-9a51-0e36f1f0b2aa",
		strings.Repeat("a", 64),
	} {
		if !identifierPattern.MatchString(id) {
			t.Errorf("expected %q to be accepted", id)
		}
	}

	for _, id := range []string{
		"",
		"Draft-1",
		"-leading-dash",
		"cap 1",
		"cap;1",
		strings.Repeat("a", 65),
	} {
		if identifierPattern.MatchString(id) {
			t.Errorf("expected %q to be rejected", id)
		}
	}
}
