package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"lexsim/internal/api"
	"lexsim/internal/chunker"
	"lexsim/internal/config"
	"lexsim/internal/corpus"
	"lexsim/internal/logging"
	"lexsim/internal/ranker"
	"lexsim/internal/retriever"
	"lexsim/internal/service"
	"lexsim/internal/summarizer"
	"lexsim/internal/textsource"
	"lexsim/internal/tui"
)

const usage = `Usage: lexsim [--config=lexsim.yaml] <command> [args]

Commands:
  chat                      interactive chat over the corpus (default)
  ask <question>            answer one question and exit
  summarize [-n N] [file]   summarize a text or HTML file, or stdin
  serve                     run the HTTP API
  import [-replace] <src> <dst.db>
                            copy a TSV or YAML corpus into SQLite
`

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./lexsim.yaml or ~/.config/lexsim/config.yaml if not provided)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	cmd, args := "chat", flag.Args()
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "chat":
		err = runChat(ctx, cfg)
	case "ask":
		err = runAsk(ctx, cfg, args)
	case "summarize":
		err = runSummarize(cfg, args)
	case "serve":
		err = runServe(ctx, cfg)
	case "import":
		err = runImport(ctx, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// newAssistant assembles the summarizer and assistant from cfg.
func newAssistant(cfg *config.AppConfig, logger *logrus.Entry) (*service.Assistant, error) {
	sum, err := summarizer.NewTextRankSummarizer(
		chunker.NewSentenceSplitter(cfg.Summarizer.DropUnterminated),
		ranker.Options{
			Damping:    cfg.Summarizer.Damping,
			Iterations: cfg.Summarizer.Iterations,
			Tolerance:  cfg.Summarizer.Tolerance,
		},
	)
	if err != nil {
		return nil, err
	}
	return service.NewAssistant(sum, service.Options{
		Retriever: retriever.Options{
			Threshold: cfg.Retriever.Threshold,
			Fallback:  cfg.Retriever.Fallback,
		},
		EmptyPrompt:      cfg.Retriever.EmptyPrompt,
		TopK:             cfg.Retriever.TopK,
		SummarySentences: cfg.Summarizer.Sentences,
	}, logger), nil
}

func loadCorpus(ctx context.Context, cfg *config.AppConfig, assistant *service.Assistant) (corpus.LoadStats, error) {
	format, err := corpus.ParseFormat(cfg.Retriever.CorpusFormat)
	if err != nil {
		return corpus.LoadStats{}, err
	}
	return assistant.LoadCorpus(ctx, cfg.Retriever.CorpusPath, format)
}

func runChat(ctx context.Context, cfg *config.AppConfig) error {
	// Logging to stderr would draw over the TUI.
	logger := logging.Discard()
	if cfg.Log.File != "" {
		l, closer, err := logging.New(cfg.Log, "lexsim-chat")
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = l
	}
	assistant, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	stats, err := loadCorpus(ctx, cfg, assistant)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	banner := fmt.Sprintf("%d entries from %s", stats.Loaded, cfg.Retriever.CorpusPath)
	if stats.Skipped > 0 {
		banner += fmt.Sprintf(" (%d malformed skipped)", stats.Skipped)
	}
	_, err = tea.NewProgram(tui.New(assistant, banner), tea.WithContext(ctx)).Run()
	return err
}

func runAsk(ctx context.Context, cfg *config.AppConfig, args []string) error {
	logger, closer, err := logging.New(cfg.Log, "lexsim-ask")
	if err != nil {
		return err
	}
	defer closer.Close()
	assistant, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	if _, err := loadCorpus(ctx, cfg, assistant); err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	fmt.Println(assistant.Ask(strings.Join(args, " ")))
	return nil
}

func runSummarize(cfg *config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	n := fs.Int("n", cfg.Summarizer.Sentences, "number of sentences to keep")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, closer, err := logging.New(cfg.Log, "lexsim-summarize")
	if err != nil {
		return err
	}
	defer closer.Close()
	assistant, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}

	var text string
	if fs.NArg() > 0 {
		text, err = textsource.ReadFile(fs.Arg(0))
	} else {
		var data []byte
		data, err = io.ReadAll(bufio.NewReader(os.Stdin))
		text = string(data)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	summary, err := assistant.Summarize(text, *n)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func runServe(ctx context.Context, cfg *config.AppConfig) error {
	logger, closer, err := logging.New(cfg.Log, "lexsim-api")
	if err != nil {
		return err
	}
	defer closer.Close()
	assistant, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	if _, err := loadCorpus(ctx, cfg, assistant); err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	srv := api.NewServer(assistant, logger, cfg.Server.MaxBodyBytes)
	return srv.Start(ctx, cfg.Server.Addr)
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	replace := fs.Bool("replace", false, "delete existing rows before importing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("import needs <src> <dst.db>")
	}
	src, dst := fs.Arg(0), fs.Arg(1)
	pairs, stats, err := corpus.Open(ctx, src, corpus.FormatAuto)
	if err != nil {
		return err
	}
	store, err := corpus.OpenSQLite(dst)
	if err != nil {
		return err
	}
	defer store.Close()
	if *replace {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", dst, err)
		}
	}
	n, err := store.Import(ctx, pairs)
	if err != nil {
		return fmt.Errorf("import into %s: %w", dst, err)
	}
	fmt.Printf("Imported %d entries into %s (%d malformed skipped)\n", n, dst, stats.Skipped)
	return nil
}
