// Package main provides the CLI entrypoint for thok.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/thok/internal/config"
	"github.com/verte-zerg/thok/internal/generator"
	"github.com/verte-zerg/thok/internal/model"
	"github.com/verte-zerg/thok/internal/resultlog"
	"github.com/verte-zerg/thok/internal/session"
	"github.com/verte-zerg/thok/internal/store"
	"github.com/verte-zerg/thok/internal/tui"
	"github.com/verte-zerg/thok/internal/wordlist"
)

const (
	defaultLang  = "en"
	defaultWords = 15
	defaultCaps  = 0.0
	defaultPunct = 0.0
)

const defaultPunctSet = ".,!?;:\"'()-"

var (
	practiceLang          string
	practiceWords         int
	practiceSecs          float64
	practicePace          float64
	practiceDeathMode     bool
	practiceFullSentences int
	practicePrompt        string
	practiceCaps          float64
	practicePunct         float64
	practicePunctSet      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "thok",
		Short:         "Sleek typing tui with visualized results and historical logging",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&practiceLang, "lang", "l", defaultLang, "language of the random words")
	flags.IntVarP(&practiceWords, "words", "w", defaultWords, "number of words to use in test")
	flags.Float64VarP(&practiceSecs, "secs", "s", 0, "number of seconds to run test (0 for untimed)")
	flags.Float64Var(&practicePace, "pace", 0, "target pace in words per minute (0 to hide)")
	flags.BoolVar(&practiceDeathMode, "death-mode", false, "end the test on the first mistake")
	flags.IntVarP(&practiceFullSentences, "full-sentences", "f", 0, "number of full sentences to use instead of random words")
	flags.StringVarP(&practicePrompt, "prompt", "p", "", "custom prompt to use")
	flags.Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	flags.Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	flags.StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	paths, err := config.LoadPaths()
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	fileCfg, err := config.LoadConfig(paths.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	p := fileCfg.Practice
	applyStringConfig(cmd, "lang", &practiceLang, p.Lang)
	applyIntConfig(cmd, "words", &practiceWords, p.Words)
	applyFloatConfig(cmd, "secs", &practiceSecs, p.Secs)
	applyFloatConfig(cmd, "pace", &practicePace, p.Pace)
	applyBoolConfig(cmd, "death-mode", &practiceDeathMode, p.DeathMode)
	applyIntConfig(cmd, "full-sentences", &practiceFullSentences, p.FullSentences)
	applyFloatConfig(cmd, "caps", &practiceCaps, p.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, p.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, p.PunctSet)

	cfg := model.Config{
		Lang:          practiceLang,
		Words:         practiceWords,
		Secs:          optional(practiceSecs),
		Pace:          optional(practicePace),
		DeathMode:     practiceDeathMode,
		FullSentences: practiceFullSentences,
		Prompt:        practicePrompt,
		CapsPct:       practiceCaps,
		PunctPct:      practicePunct,
		PunctSet:      practicePunctSet,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, source, err := wordlist.Resolve(cfg.Lang, paths.WordListDir)
	if err != nil {
		return wordListLoadError(cfg.Lang, paths.WordListDir, err)
	}

	st, err := store.Open(paths.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m := tui.NewModel(tui.Options{
		Config:    cfg,
		Words:     words,
		Generator: generator.New(),
		Sink:      session.MultiSink{resultlog.Open(paths.Log), st},
		History:   st,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI (words from %s): %w", source, err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	paths, err := config.LoadPaths()
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	path := paths.Config
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the commented template unless the file exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	paths, err := config.LoadPaths()
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	langs, err := wordlist.Langs(paths.WordListDir)
	if err != nil {
		return err
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func optional(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# thok configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q             # Language of the random words
# words = %d              # Words per test
# secs = 30               # Time limit in seconds
# pace = 60               # Target pace in words per minute
# death-mode = false      # End the test on the first mistake
# full-sentences = 0      # Use N full sentences instead of random words
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q   # Punctuation set
`,
		defaultLang,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.FullSentences < 0 {
		return fmt.Errorf("--full-sentences must be >= 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	return nil
}

func wordListLoadError(lang, dir string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("user word lists are read from: %s", dir),
		"Run: thok langs",
	}
	return fmt.Errorf("language %q unavailable: %s", lang, strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
