package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opbdl/opb-downloader/internal/config"
	"github.com/opbdl/opb-downloader/internal/download"
)

func main() {
	// Command line flags
	var (
		showFlag     = flag.String("show", "", "URL key of the show to download (e.g. oregon-art-beat)")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		groupFlag    = flag.String("group", "", "Release group tag appended to file names")
		specialsFlag = flag.Bool("specials", false, "Also download the show's specials")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Resolve the season list without downloading")
	)

	flag.Parse()

	// CLI mode - require a show key
	if *showFlag == "" && flag.NArg() == 0 {
		fmt.Println("OPB Downloader - Download shows from watch.opb.org")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  opb-dl -show <key> [options]")
		fmt.Println("  opb-dl <key> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: opb-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *groupFlag != "" {
		settings.ReleaseGroup = *groupFlag
	}
	if *specialsFlag {
		settings.IncludeSpecials = true
	}

	// Get show key
	showKey := *showFlag
	if showKey == "" && flag.NArg() > 0 {
		showKey = flag.Arg(0)
	}

	// The downloader and probe binaries are needed before any network work.
	if !*dryRunFlag {
		if err := download.CheckDependencies(settings.DownloaderBin, settings.ProbeBin); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "[error] "
		case download.LevelWarning:
			prefix = "[warn]  "
		case download.LevelSuccess:
			prefix = "[done]  "
		case download.LevelInfo:
			prefix = "[info]  "
		default:
			prefix = "        "
		}

		fmt.Println(prefix + event.Message)
	})

	// Initialize
	fmt.Println("OPB Downloader")
	fmt.Println("----------------------------------------")
	fmt.Println()

	if err := manager.Initialize(ctx, showKey); err != nil {
		if errors.Is(err, download.ErrShowNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no show found for key %q\n", showKey)
		} else {
			fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		}
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not downloading]")
		return
	}

	// Start downloads
	fmt.Println("\nStarting downloads...")
	fmt.Println()

	if err := manager.StartDownloads(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	done, skipped, failed, total := manager.GetProgress()
	fmt.Println()
	fmt.Println("----------------------------------------")
	fmt.Printf("Complete! Downloaded %d/%d episode(s)\n", done, total)
	if skipped > 0 {
		fmt.Printf("   (%d already present, skipped)\n", skipped)
	}
	if failed > 0 {
		fmt.Printf("   (%d failed, see errors above)\n", failed)
		os.Exit(1)
	}
}
