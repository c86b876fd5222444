// Package generator builds typing prompts.
package generator

import (
	"bufio"
	_ "embed"
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/thok/internal/model"
)

// maxTimedWPM sizes timed prompts so fast typists do not run out of text.
const maxTimedWPM = 200.0

//go:embed data/sentences.txt
var sentenceData string

// Generator produces randomized typing text.
type Generator struct {
	rnd       *rand.Rand
	sentences []string
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{
		rnd:       rand.New(rand.NewSource(seed)),
		sentences: parseSentences(sentenceData),
	}
}

// Prompt builds the text for a session and reports its word count. A custom
// prompt wins over full sentences, which win over random words.
func (g *Generator) Prompt(cfg model.Config, words []string) (string, int) {
	switch {
	case strings.TrimSpace(cfg.Prompt) != "":
		text := strings.Join(strings.Fields(cfg.Prompt), " ")
		return text, len(strings.Fields(text))
	case cfg.FullSentences > 0:
		text := strings.Join(g.Sentences(cfg.FullSentences), " ")
		return text, len(strings.Fields(text))
	}
	count := cfg.Words
	if cfg.Secs != nil {
		if timed := WordsForDuration(*cfg.Secs); timed > count {
			count = timed
		}
	}
	picked := g.Generate(words, count, cfg.CapsPct, cfg.PunctPct, []rune(cfg.PunctSet))
	return strings.Join(picked, " "), len(picked)
}

// WordsForDuration returns enough words to outlast a fast typist.
func WordsForDuration(secs float64) int {
	if secs <= 0 {
		return 0
	}
	return int(math.Ceil(secs * maxTimedWPM / 60.0))
}

// Generate selects words uniformly and applies caps/punctuation rules.
func (g *Generator) Generate(words []string, count int, capsPct, punctPct float64, punctSet []rune) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
		result = append(result, word)
	}
	return result
}

// Sentences picks count sentences from the embedded corpus without
// repeating until the corpus is exhausted.
func (g *Generator) Sentences(count int) []string {
	if count <= 0 || len(g.sentences) == 0 {
		return nil
	}
	out := make([]string, 0, count)
	var order []int
	for len(out) < count {
		if len(order) == 0 {
			order = g.rnd.Perm(len(g.sentences))
		}
		out = append(out, g.sentences[order[0]])
		order = order[1:]
	}
	return out
}

func parseSentences(data string) []string {
	var out []string
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
