package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"shamba-service/internal/config"

	"github.com/spf13/cobra"
)

func setupLogging(logDir string) (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	fmt.Println("Log directory:", logDir)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	if absPath, err := filepath.Abs(logFile); err == nil {
		fmt.Printf("Logging to: %s\n", absPath)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func newRootCmd() *cobra.Command {
	cfg := config.New()

	root := &cobra.Command{
		Use:          "shamba-service",
		Short:        "Shamba Smart planting advisory service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logFile, err := setupLogging(cfg.LogDir)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Printf("Error setting up file logging, using stderr: %v", err)
			return
		}
		cobra.OnFinalize(func() { logFile.Close() })
	}

	root.AddCommand(newServeCmd(cfg), newSeedCmd(cfg))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("shamba-service exited with error: %v", err)
		os.Exit(1)
	}
}
