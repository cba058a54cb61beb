package query

import (
	"strings"
	"testing"
)

func TestBuildFiltersStopwordsAndShortWords(t *testing.T) {
	b := NewBuilder(10)
	got := b.Build("We present a deep learning approach to climate modeling and forecasting.")
	want := "deep learning climate modeling forecasting"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildDeduplicates(t *testing.T) {
	b := NewBuilder(10)
	got := b.Build("climate climate climate modeling modeling")
	if got != "climate modeling" {
		t.Errorf("got %q", got)
	}
}

func TestBuildCapsKeywordCount(t *testing.T) {
	b := NewBuilder(5)
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"
	got := b.Build(text)
	if n := len(strings.Fields(got)); n != 5 {
		t.Errorf("got %d keywords, want 5: %q", n, got)
	}
}

func TestBuildBoundedLength(t *testing.T) {
	b := NewBuilder(10)
	long := strings.Repeat("supercalifragilistic expialidocious thermodynamics ", 100)
	got := b.Build(long)
	if len(got) > 300 {
		t.Errorf("query too long for search APIs: %d chars", len(got))
	}
}

func TestBuildEmptyAndDegenerate(t *testing.T) {
	b := NewBuilder(10)
	if got := b.Build(""); got != "" {
		t.Errorf("empty input: got %q", got)
	}
	if got := b.Build("the of and a to it 123 !!"); got != "" {
		t.Errorf("no usable terms: got %q", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder(10)
	text := "stochastic optimization of convolutional architectures under resource constraints"
	first := b.Build(text)
	for i := 0; i < 5; i++ {
		if got := b.Build(text); got != first {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
}
