package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/stagewire/stagewire-aws-go/internal/lint"
)

// newWatchCmd creates the "watch" subcommand for auto-rebuilding on file changes.
func newWatchCmd() *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [package]",
		Short: "Auto-rebuild a stack template on source changes",
		Long: `Watch monitors a stack package for .go file changes, lints on each
change, and rebuilds the template when lint passes. Rapid changes are
debounced.

Examples:
    stagewire-aws watch ./service
    stagewire-aws watch ./service -o service.template.json
    stagewire-aws watch ./toolchain --lint-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.lintOnly, "lint-only", false, "Only run lint, skip build")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Template format: json or yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file for build (default: stdout)")
	cmd.Flags().StringVar(&opts.stackName, "stack-name", "", "Stack name the template will deploy as")
	cmd.Flags().StringVar(&opts.context, "context", "cmd/webapi", "Docker build context for non-production images")

	return cmd
}

type watchOptions struct {
	lintOnly  bool
	debounce  time.Duration
	format    string
	output    string
	stackName string
	context   string
}

// runWatch monitors the stack package directory and runs lint/build on changes.
func runWatch(pkg string, opts watchOptions) error {
	// The stack must be known up front; a typo should fail before watching.
	if _, err := stackFor(pkg); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir, err := filepath.Abs(strings.TrimSuffix(strings.TrimSuffix(pkg, "/..."), "/"))
	if err != nil {
		return err
	}
	if err := addDirRecursive(watcher, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	fmt.Printf("Watching: %s\n", dir)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial lint/build...")
	runLintAndBuild(pkg, opts)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !strings.HasSuffix(event.Name, ".go") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, rebuilding...\n", time.Now().Format("15:04:05"))
			runLintAndBuild(pkg, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// addDirRecursive adds a directory and all subdirectories to the watcher.
func addDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			if filepath.Base(path) == "vendor" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// runLintAndBuild lints the package and, when lint passes, rebuilds the
// template. Failures are reported but never stop the watch loop.
func runLintAndBuild(pkg string, opts watchOptions) {
	lintResult, err := lint.LintPackage(pkg, lint.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lint error: %v\n", err)
		return
	}

	for _, issue := range lintResult.Issues {
		fmt.Printf("%s:%d:%d: %s: %s [%s]\n",
			issue.File, issue.Line, issue.Column,
			issue.Severity, issue.Message, issue.Rule)
	}
	if !lintResult.Success {
		fmt.Println("Lint failed, skipping build")
		return
	}

	fmt.Println("Lint passed")

	if opts.lintOnly {
		return
	}

	stackName := opts.stackName
	if stackName == "" {
		stackName = "watch-dev"
	}

	buildOpts := buildOptions{
		pkg:       pkg,
		output:    opts.output,
		format:    opts.format,
		stackName: stackName,
		context:   opts.context,
	}
	if err := runBuild(&buildOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Build error: %v\n", err)
	}
}
