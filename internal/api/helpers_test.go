// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package api

import (
	"net/http/httptest"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with\nnewline", "with\\x0anewline"},
		{"tab\there", "tab\\x09here"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte("payload"))
	b := generateETag([]byte("payload"))
	c := generateETag([]byte("other"))

	if a != b {
		t.Error("identical payloads should produce identical ETags")
	}
	if a == c {
		t.Error("different payloads should produce different ETags")
	}
}

func TestGetIntParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/?n=7&bad=x", nil)

	if got := getIntParam(r, "n", 3); got != 7 {
		t.Errorf("n = %d, want 7", got)
	}
	if got := getIntParam(r, "bad", 3); got != 3 {
		t.Errorf("bad = %d, want default 3", got)
	}
	if got := getIntParam(r, "missing", 3); got != 3 {
		t.Errorf("missing = %d, want default 3", got)
	}
}

func TestClampListSize(t *testing.T) {
	tests := []struct {
		n, max, want int
	}{
		{5, 10, 5},
		{0, 10, 1},
		{-3, 10, 1},
		{20, 10, 10},
	}
	for _, tt := range tests {
		if got := clampListSize(tt.n, tt.max); got != tt.want {
			t.Errorf("clampListSize(%d, %d) = %d, want %d", tt.n, tt.max, got, tt.want)
		}
	}
}
