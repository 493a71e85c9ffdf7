package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
)

//go:embed questions.json
var embeddedCatalog []byte

// Question is a single prompt/answer pair. The answer may encode a
// multi-valued result as a comma-separated set (e.g. the two roots of a
// quadratic), accepted in any order.
type Question struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Bank is the immutable question catalog, keyed by track label.
// Track labels double as the selection keywords users send to the bot.
type Bank struct {
	tracks map[string][]Question
}

// New builds a bank from an in-memory catalog and validates that every
// track holds at least minPerTrack questions.
func New(tracks map[string][]Question, minPerTrack int) (*Bank, error) {
	b := &Bank{tracks: tracks}
	if err := b.validate(minPerTrack); err != nil {
		return nil, err
	}
	return b, nil
}

// Load reads the catalog from path, or from the embedded default when
// path is empty.
func Load(path string, minPerTrack int) (*Bank, error) {
	data := embeddedCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read question catalog: %w", err)
		}
	}

	var tracks map[string][]Question
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("parse question catalog: %w", err)
	}
	return New(tracks, minPerTrack)
}

// validate rejects catalogs that cannot serve a full quiz. A track with
// too few questions is a configuration error, caught at startup.
func (b *Bank) validate(minPerTrack int) error {
	if len(b.tracks) == 0 {
		return fmt.Errorf("question catalog has no tracks")
	}
	for track, questions := range b.tracks {
		if len(questions) < minPerTrack {
			return fmt.Errorf("track %q has %d questions, need at least %d", track, len(questions), minPerTrack)
		}
	}
	return nil
}

// Tracks returns the track labels in stable order.
func (b *Bank) Tracks() []string {
	labels := make([]string, 0, len(b.tracks))
	for t := range b.tracks {
		labels = append(labels, t)
	}
	sort.Strings(labels)
	return labels
}

func (b *Bank) HasTrack(name string) bool {
	_, ok := b.tracks[name]
	return ok
}

// Sample draws n distinct questions from the track without replacement.
// Validation at load time guarantees every track can satisfy n.
func (b *Bank) Sample(track string, n int) ([]Question, error) {
	questions, ok := b.tracks[track]
	if !ok {
		return nil, fmt.Errorf("unknown track %q", track)
	}
	if n > len(questions) {
		return nil, fmt.Errorf("track %q has only %d questions, asked for %d", track, len(questions), n)
	}

	sampled := make([]Question, 0, n)
	for _, i := range rand.Perm(len(questions))[:n] {
		sampled = append(sampled, questions[i])
	}
	return sampled, nil
}
