package cli

import (
	"bufio"
	"context"
	"errors"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfvector/internal/adapters/driven/watcher"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driving"
)

var watchInputDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a folder and index new documents",
	Long: `Watches the input folder for new and changed documents. Each file is
fingerprinted, extracted, chunked, embedded and stored; files already
indexed are skipped. While watching, questions typed on stdin are
answered from the index. Type "quit" or press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchInputDir, "input-dir", "i", "", "folder to watch (overrides config)")
	watchCmd.Flags().IntVar(&workersOverride, "workers", 0, "worker pool size (overrides config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	inputDir := watchInputDir
	if inputDir == "" && appConfig != nil {
		inputDir = appConfig.InputDir
	}
	if inputDir == "" {
		return errors.New("no input folder: set --input-dir or input_dir in config")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := checkEmbedder(ctx); err != nil {
		return err
	}

	if err := pipelineService.Start(ctx); err != nil {
		return err
	}

	w, err := watcher.New(inputDir, extractorRegistry.Supported(), pipelineService)
	if err != nil {
		return err
	}
	defer w.Close()

	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cmd.PrintErrf("watcher stopped: %v\n", err)
			cancel()
		}
	}()

	var printer sync.WaitGroup
	printer.Add(1)
	go func() {
		defer printer.Done()
		for event := range pipelineService.Events() {
			printEvent(cmd, event)
		}
	}()

	cmd.Printf("Watching %s. Ask a question, or type \"quit\" to exit.\n", inputDir)
	askLoop(ctx, cmd)

	cancel()
	pipelineService.Stop()
	printer.Wait()
	cmd.Println("Stopped.")
	return nil
}

// askLoop answers questions from stdin until EOF, "quit" or cancellation.
func askLoop(ctx context.Context, cmd *cobra.Command) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			question := strings.TrimSpace(line)
			if question == "" {
				continue
			}
			if question == "quit" || question == "exit" {
				return
			}

			matches, err := queryService.Query(ctx, question, 0)
			if err != nil {
				cmd.PrintErrf("query failed: %v\n", err)
				continue
			}
			printMatches(cmd, matches)
		}
	}
}

// printEvent renders one pipeline outcome.
func printEvent(cmd *cobra.Command, event driving.Event) {
	switch event.Kind {
	case driving.EventProcessed:
		cmd.Printf("indexed  %s (%d chunks)\n", event.Path, event.ChunkCount)
	case driving.EventSkipped:
		cmd.Printf("skipped  %s (already indexed)\n", event.Path)
	case driving.EventFailed:
		cmd.Printf("failed   %s: %v\n", event.Path, event.Err)
	}
}
