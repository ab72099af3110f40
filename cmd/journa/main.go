// Command journa runs the journal extraction pipeline and assistant from
// the command line. A journal or import file is categorized and committed;
// a chat instruction is interpreted into proposed actions, applied only
// with -yes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrypster/journa/internal/config"
	"github.com/scrypster/journa/internal/directory"
	"github.com/scrypster/journa/internal/engine"
	"github.com/scrypster/journa/internal/llm"
	"github.com/scrypster/journa/internal/services"
	"github.com/scrypster/journa/internal/storage"
	"github.com/scrypster/journa/internal/storage/postgres"
	"github.com/scrypster/journa/internal/storage/sqlite"
	"github.com/scrypster/journa/pkg/types"
)

type stores struct {
	logs     storage.LogStore
	events   storage.EventStore
	people   storage.PersonStore
	groups   storage.GroupStore
	settings storage.SettingsStore
	close    func() error
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	journalPath := flag.String("journal", "", "Categorize and commit a journal entry from this file")
	importPath := flag.String("import", "", "Categorize and commit an imported conversation from this file")
	importSource := flag.String("source", "", "Import source label, e.g. Instagram, Messages")
	importFrom := flag.String("from", "", "Contact the import conversation is with")
	povIsMe := flag.Bool("pov", true, "Import point of view is the journal author's")
	chatText := flag.String("chat", "", "Send an instruction to the assistant")
	applyActions := flag.Bool("yes", false, "Apply proposed assistant actions without prompting")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := openStores(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.close()

	gen, err := llm.NewTextGenerator(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	dir := directory.New(st.people, cfg.Device.DisplayName)
	categorizer := engine.NewCategorizer(gen, dir, st.logs, st.events, cfg.Categorize)
	settings := services.NewSettingsService(st.settings)
	interpreter := engine.NewInterpreter(gen, st.logs, st.events, st.people, st.groups, settings)
	executor := engine.NewExecutor(st.logs, st.events, st.people, st.groups)

	ctx := context.Background()

	switch {
	case *journalPath != "":
		runJournal(ctx, categorizer, *journalPath)
	case *importPath != "":
		runImport(ctx, categorizer, *importPath, *importSource, *importFrom, *povIsMe)
	case *chatText != "":
		runChat(ctx, interpreter, executor, *chatText, *applyActions)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	return config.LoadConfig()
}

func openStores(cfg config.StorageConfig) (*stores, error) {
	switch cfg.StorageEngine {
	case "postgres":
		store, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return &stores{
			logs:     store.Logs,
			events:   store.Events,
			people:   store.People,
			groups:   store.Groups,
			settings: store.Settings,
			close:    store.Close,
		}, nil
	case "sqlite", "":
		if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
			return nil, err
		}
		store, err := sqlite.Open(filepath.Join(cfg.DataPath, "journa.db"))
		if err != nil {
			return nil, err
		}
		return &stores{
			logs:     store.Logs,
			events:   store.Events,
			people:   store.People,
			groups:   store.Groups,
			settings: store.Settings,
			close:    store.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage engine: %s", cfg.StorageEngine)
}

func runJournal(ctx context.Context, categorizer *engine.Categorizer, path string) {
	text := readFile(path)
	segments, err := categorizer.CategorizeJournal(ctx, text)
	if err != nil {
		log.Fatalf("Categorization failed: %v", err)
	}
	printSegments(segments)

	entry, queue, err := categorizer.Commit(ctx, text, segments, "", "")
	if err != nil {
		log.Fatalf("Commit failed: %v", err)
	}
	fmt.Printf("Saved log %s: %s\n", entry.ID, entry.Title)
	drainConflicts(ctx, queue)
}

func runImport(ctx context.Context, categorizer *engine.Categorizer, path, source, from string, povIsMe bool) {
	text := readFile(path)
	segments, err := categorizer.CategorizeImport(ctx, text, source, from, povIsMe)
	if err != nil {
		log.Fatalf("Categorization failed: %v", err)
	}
	printSegments(segments)

	entry, queue, err := categorizer.Commit(ctx, text, segments, source, from)
	if err != nil {
		log.Fatalf("Commit failed: %v", err)
	}
	fmt.Printf("Saved import log %s: %s\n", entry.ID, entry.Title)
	drainConflicts(ctx, queue)
}

// drainConflicts resolves ambiguous person segments with their first
// candidate. The stored queue order is extraction order, so results are
// deterministic.
func drainConflicts(ctx context.Context, queue *engine.ConflictQueue) {
	for {
		pending, ok := queue.Current()
		if !ok {
			return
		}
		names := make([]string, 0, len(pending.Candidates))
		for _, person := range pending.Candidates {
			names = append(names, person.Name)
		}
		chosen := pending.Candidates[0]
		fmt.Printf("Ambiguous match for %q (candidates: %s), attributing to %s\n",
			pending.Segment.Text, strings.Join(names, ", "), chosen.Name)
		if err := queue.Resolve(ctx, chosen); err != nil {
			log.Fatalf("Failed to resolve conflict: %v", err)
		}
	}
}

func runChat(ctx context.Context, interpreter *engine.Interpreter, executor *engine.Executor, text string, apply bool) {
	reply, err := interpreter.Interpret(ctx, text, nil)
	if err != nil {
		log.Fatalf("Chat failed: %v", err)
	}
	fmt.Println(reply.Message)

	if len(reply.Actions) == 0 {
		return
	}
	fmt.Println("\nProposed actions:")
	for _, action := range reply.Actions {
		desc := action.Describe()
		if desc == "" {
			desc = string(action.Type())
		}
		fmt.Printf("  - %s\n", desc)
	}
	if !apply {
		fmt.Println("\nRe-run with -yes to apply.")
		return
	}
	for _, result := range executor.Execute(ctx, reply.Actions) {
		fmt.Println(result)
	}
}

func printSegments(segments []types.Segment) {
	for _, segment := range segments {
		marker := ""
		if segment.Removed {
			marker = " (removed)"
		}
		if segment.ContactName != "" {
			fmt.Printf("[%s] %s: %s%s\n", segment.Kind(), segment.ContactName, segment.Text, marker)
		} else {
			fmt.Printf("[%s] %s%s\n", segment.Kind(), segment.Text, marker)
		}
	}
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
