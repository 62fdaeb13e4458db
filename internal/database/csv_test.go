// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package database

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `Track Name,Artist Name(s),Album Name,Duration (ms),Popularity,Explicit,Added At,Genres,Danceability,Energy,Valence,Acousticness,Tempo
Song A,Artist One,Album X,210000,85,true,2024-03-01T12:00:00Z,"pop, dance pop",0.8,0.7,0.9,0.1,120
Song B,Artist Two,Album Y,180000,40,false,2023-07-15T08:30:00Z,indie rock,0.4,0.3,0.2,0.7,90
`

func TestParseHistoryCSV(t *testing.T) {
	tracks, err := ParseHistoryCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseHistoryCSV() failed: %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	a := tracks[0]
	if a.TrackName != "Song A" || a.ArtistNames != "Artist One" {
		t.Errorf("track 0 = %q / %q", a.TrackName, a.ArtistNames)
	}
	if a.DurationMS != 210000 {
		t.Errorf("DurationMS = %d, want 210000", a.DurationMS)
	}
	if a.Popularity != 85 {
		t.Errorf("Popularity = %f, want 85", a.Popularity)
	}
	if !a.Explicit {
		t.Error("track 0 should be explicit")
	}
	if a.AddedAt.IsZero() {
		t.Error("track 0 AddedAt should be parsed")
	}
	if a.Genres != "pop, dance pop" {
		t.Errorf("Genres = %q", a.Genres)
	}
	if a.Mood == "" || a.Mood == "unknown" {
		t.Errorf("Mood = %q, want a derived label", a.Mood)
	}

	b := tracks[1]
	if b.Explicit {
		t.Error("track 1 should not be explicit")
	}
	// Columns absent from the header fall back to neutral values
	if b.Instrumentalness != 0.5 || b.Liveness != 0.5 || b.Speechiness != 0.5 {
		t.Errorf("missing feature columns should default to 0.5, got %f/%f/%f",
			b.Instrumentalness, b.Liveness, b.Speechiness)
	}
}

func TestParseHistoryCSVMissingColumns(t *testing.T) {
	csv := "Track Name,Popularity\nSong,50\n"

	_, err := ParseHistoryCSV(strings.NewReader(csv))

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnsError", err)
	}
	if len(missing.Columns) != 2 {
		t.Errorf("missing = %v, want [Artist Name(s), Duration (ms)]", missing.Columns)
	}
}

func TestParseHistoryCSVEmpty(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"no content", ""},
		{"header only", "Track Name,Artist Name(s),Duration (ms),Popularity\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHistoryCSV(strings.NewReader(tt.csv))
			if !errors.Is(err, ErrEmptyCSV) {
				t.Errorf("err = %v, want ErrEmptyCSV", err)
			}
		})
	}
}

func TestParseHistoryCSVSkipsBadRows(t *testing.T) {
	csv := `Track Name,Artist Name(s),Duration (ms),Popularity
Good,Artist,200000,50
Bad Duration,Artist,not-a-number,50
Bad Popularity,Artist,200000,n/a
`
	tracks, err := ParseHistoryCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseHistoryCSV() failed: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1 (bad rows skipped)", len(tracks))
	}
	if tracks[0].TrackName != "Good" {
		t.Errorf("kept track = %q, want Good", tracks[0].TrackName)
	}
}

func TestParseHistoryCSVAllRowsBad(t *testing.T) {
	csv := "Track Name,Artist Name(s),Duration (ms),Popularity\nBad,Artist,x,y\n"

	_, err := ParseHistoryCSV(strings.NewReader(csv))
	if !errors.Is(err, ErrEmptyCSV) {
		t.Errorf("err = %v, want ErrEmptyCSV", err)
	}
}

func TestParseAddedAtLayouts(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"2024-03-01T12:00:00Z", true},
		{"2024-03-01 12:00:00", true},
		{"2024-03-01", true},
		{"March 1st", false},
		{"", false},
	}
	for _, tt := range tests {
		if _, ok := parseAddedAt(tt.raw); ok != tt.ok {
			t.Errorf("parseAddedAt(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
		}
	}
}
