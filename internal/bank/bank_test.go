package bank

import (
	"strings"
	"testing"
)

func catalog() map[string][]Question {
	return map[string][]Question{
		"رياضيات": {
			{Prompt: "Q1", Answer: "1"},
			{Prompt: "Q2", Answer: "2"},
			{Prompt: "Q3", Answer: "3"},
			{Prompt: "Q4", Answer: "4"},
			{Prompt: "Q5", Answer: "5"},
			{Prompt: "Q6", Answer: "6"},
		},
	}
}

func TestNewValidatesTrackSize(t *testing.T) {
	_, err := New(map[string][]Question{
		"فيزياء": {{Prompt: "Q1", Answer: "a"}},
	}, 5)
	if err == nil {
		t.Fatal("track with one question should fail validation against a minimum of 5")
	}
	if !strings.Contains(err.Error(), "فيزياء") {
		t.Errorf("validation error should name the offending track, got %q", err)
	}
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	if _, err := New(map[string][]Question{}, 5); err == nil {
		t.Fatal("empty catalog should fail validation")
	}
}

func TestEmbeddedCatalogIsValid(t *testing.T) {
	b, err := Load("", 5)
	if err != nil {
		t.Fatalf("embedded catalog failed to load: %v", err)
	}
	if len(b.Tracks()) == 0 {
		t.Fatal("embedded catalog has no tracks")
	}
}

func TestTracksSorted(t *testing.T) {
	b, err := New(map[string][]Question{
		"ب": catalog()["رياضيات"],
		"أ": catalog()["رياضيات"],
	}, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	labels := b.Tracks()
	if len(labels) != 2 || labels[0] != "أ" || labels[1] != "ب" {
		t.Errorf("Tracks() = %v, want sorted [أ ب]", labels)
	}
}

func TestHasTrack(t *testing.T) {
	b, _ := New(catalog(), 5)
	if !b.HasTrack("رياضيات") {
		t.Error("HasTrack(رياضيات) = false, want true")
	}
	if b.HasTrack("تاريخ") {
		t.Error("HasTrack(تاريخ) = true, want false")
	}
}

func TestSampleDistinct(t *testing.T) {
	b, _ := New(catalog(), 5)

	for trial := 0; trial < 50; trial++ {
		sampled, err := b.Sample("رياضيات", 5)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if len(sampled) != 5 {
			t.Fatalf("got %d questions, want 5", len(sampled))
		}
		seen := make(map[string]bool)
		for _, q := range sampled {
			if seen[q.Prompt] {
				t.Fatalf("trial %d: question %q drawn twice", trial, q.Prompt)
			}
			seen[q.Prompt] = true
		}
	}
}

func TestSampleUnknownTrack(t *testing.T) {
	b, _ := New(catalog(), 5)
	if _, err := b.Sample("تاريخ", 5); err == nil {
		t.Fatal("Sample from unknown track should fail")
	}
}
