package generator

import (
	"strings"
	"testing"
	"unicode"

	"github.com/verte-zerg/thok/internal/model"
)

var testWords = []string{"alpha", "beta", "gamma", "delta"}

func TestPromptRandomWords(t *testing.T) {
	g := NewWithSeed(1)
	text, n := g.Prompt(model.Config{Words: 7}, testWords)
	if n != 7 {
		t.Fatalf("expected 7 words, got %d", n)
	}
	if got := len(strings.Fields(text)); got != 7 {
		t.Fatalf("expected 7 fields in %q", text)
	}
	if strings.Contains(text, "  ") || strings.HasSuffix(text, " ") {
		t.Fatalf("expected single-space separated prompt, got %q", text)
	}
}

func TestPromptCustomText(t *testing.T) {
	g := NewWithSeed(1)
	text, n := g.Prompt(model.Config{Words: 50, Prompt: "  hello   there world "}, testWords)
	if text != "hello there world" || n != 3 {
		t.Fatalf("unexpected custom prompt %q (%d)", text, n)
	}
}

func TestPromptTimedUsesEnoughWords(t *testing.T) {
	g := NewWithSeed(1)
	secs := 30.0
	_, n := g.Prompt(model.Config{Words: 10, Secs: &secs}, testWords)
	if n != 100 {
		t.Fatalf("expected 100 words for 30s, got %d", n)
	}
}

func TestPromptFullSentences(t *testing.T) {
	g := NewWithSeed(3)
	text, n := g.Prompt(model.Config{Words: 5, FullSentences: 2}, testWords)
	if n != len(strings.Fields(text)) || n == 0 {
		t.Fatalf("word count %d does not match %q", n, text)
	}
	last := []rune(text)[len([]rune(text))-1]
	if !unicode.IsPunct(last) {
		t.Fatalf("expected sentence punctuation at end of %q", text)
	}
}

func TestSentencesDoNotRepeatWithinCorpus(t *testing.T) {
	g := NewWithSeed(5)
	total := len(g.sentences)
	picked := g.Sentences(total)
	seen := map[string]bool{}
	for _, s := range picked {
		if seen[s] {
			t.Fatalf("sentence repeated before corpus exhausted: %q", s)
		}
		seen[s] = true
	}
	if more := g.Sentences(total + 3); len(more) != total+3 {
		t.Fatalf("expected %d sentences, got %d", total+3, len(more))
	}
}

func TestGenerateCapsAndPunct(t *testing.T) {
	g := NewWithSeed(9)
	words := g.Generate([]string{"word"}, 20, 1, 1, []rune{'!'})
	for _, w := range words {
		if w != "Word!" {
			t.Fatalf("expected caps and punctuation on every word, got %q", w)
		}
	}
	if got := g.Generate(nil, 5, 0, 0, nil); got != nil {
		t.Fatalf("expected nil for empty word list, got %v", got)
	}
}
