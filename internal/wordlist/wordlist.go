// Package wordlist loads word lists from files or the embedded defaults.
package wordlist

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed data/*.txt
var embedded embed.FS

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

// Embedded returns the built-in list for lang.
func Embedded(lang string) ([]string, bool) {
	file, err := embedded.Open("data/" + strings.ToLower(lang) + ".txt")
	if err != nil {
		return nil, false
	}
	defer func() {
		_ = file.Close()
	}()
	words, err := readWords(file)
	if err != nil {
		return nil, false
	}
	return words, true
}

// Resolve loads the word list for lang, preferring dir/<lang>.txt over the
// embedded list. It returns the words and where they came from.
func Resolve(lang, dir string) ([]string, string, error) {
	if dir != "" {
		path := filepath.Join(dir, lang+".txt")
		words, err := LoadWords(path)
		switch {
		case err == nil:
			words = Filter(words, FilterForLang(lang))
			if len(words) == 0 {
				return nil, "", fmt.Errorf("word list %s has no usable words", path)
			}
			return words, path, nil
		case !os.IsNotExist(err):
			return nil, "", fmt.Errorf("failed to load word list: %w", err)
		}
	}
	if words, ok := Embedded(lang); ok {
		return words, "embedded:" + lang, nil
	}
	return nil, "", fmt.Errorf("language %q not found", lang)
}

// Langs lists embedded languages and any user lists found in dir.
func Langs(dir string) ([]string, error) {
	set := map[string]struct{}{}
	entries, err := embedded.ReadDir("data")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		set[strings.TrimSuffix(entry.Name(), ".txt")] = struct{}{}
	}
	if dir != "" {
		userEntries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
		}
		for _, entry := range userEntries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
				continue
			}
			set[strings.TrimSuffix(name, ".txt")] = struct{}{}
		}
	}
	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
