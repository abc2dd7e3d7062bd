package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/cli"
	"github.com/pythia-lang/pythia/internal/parser"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and re-check files as they change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parserOptions()
		if err != nil {
			return err
		}
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer watcher.Close()

		root := args[0]
		if err := watchTree(watcher, root); err != nil {
			return err
		}
		logger.Info("watching", "dir", root)

		// coalesce bursts of events per file
		pending := map[string]time.Time{}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						logger.Warn("watch new directory", "dir", event.Name, "err", err)
					}
					continue
				}
				if filepath.Ext(event.Name) == ".py" {
					pending[event.Name] = time.Now()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watcher error", "err", err)
			case now := <-ticker.C:
				for path, stamp := range pending {
					if now.Sub(stamp) < 150*time.Millisecond {
						continue
					}
					delete(pending, path)
					checkOne(path, opts)
				}
			}
		}
	},
}

func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func checkOne(path string, opts parser.Options) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read", "file", path, "err", err)
		return
	}
	if _, err := parser.ParseWithOptions(string(data), path, opts); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderDiagnostic(err))
		return
	}
	fmt.Printf("%s: ok\n", path)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
