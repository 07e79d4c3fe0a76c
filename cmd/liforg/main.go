package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"liforganiser/internal/config"
	"liforganiser/internal/model"
	"liforganiser/internal/organise"
)

// fetchCourse resolves the course model, bypassing the cache when rescrape
// is set.
func fetchCourse(ctx context.Context, manager *organise.Manager, courseID int, rescrape bool) (*model.Course, error) {
	if rescrape {
		return manager.RefreshCourse(ctx, courseID)
	}
	return manager.GetCourse(ctx, courseID)
}

func main() {
	// Command line flags
	var (
		courseFlag     = flag.Int("course", 0, "LearnItFirst course ID to organise")
		srcFlag        = flag.String("src", "", "Source directory with downloaded chapter files (overrides config)")
		dstFlag        = flag.String("dst", "", "Destination directory for the organised course (overrides config)")
		configFlag     = flag.String("config", "", "Path to config file")
		chapterReFlag  = flag.String("chapter-pattern", "", "Pattern matching chapter entries in the source directory (overrides config)")
		lessonReFlag   = flag.String("lesson-pattern", "", "Pattern matching lesson file names (overrides config)")
		videoDstFlag   = flag.String("video-dst", "", "Separate destination for video files (overrides config)")
		pdfDstFlag     = flag.String("pdf-dst", "", "Separate destination for PDF files (overrides config)")
		donePrefixFlag = flag.String("done-prefix", "", "Prefix for completed source entries so re-runs skip them (overrides config)")
		rescrapeFlag   = flag.Bool("rescrape", false, "Ignore the cached course model and scrape again")
		dryRunFlag     = flag.Bool("dry-run", false, "Fetch and print the course model without moving files")
		verboseFlag    = flag.Bool("verbose", false, "Show verbose output")
		writeConfFlag  = flag.String("write-config", "", "Write the effective configuration to this path and exit")
	)

	flag.Parse()

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
	if *srcFlag != "" {
		settings.SourcePath = *srcFlag
	}
	if *dstFlag != "" {
		settings.DestinationPath = *dstFlag
	}
	if *chapterReFlag != "" {
		settings.ChapterPattern = *chapterReFlag
	}
	if *lessonReFlag != "" {
		settings.LessonPattern = *lessonReFlag
	}
	if *videoDstFlag != "" {
		settings.VideoPath = *videoDstFlag
	}
	if *pdfDstFlag != "" {
		settings.DocumentPath = *pdfDstFlag
	}
	if *donePrefixFlag != "" {
		settings.CompletedPrefix = *donePrefixFlag
	}

	if *writeConfFlag != "" {
		if err := settings.Save(*writeConfFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote configuration to %s\n", *writeConfFlag)
		return
	}

	courseID := *courseFlag
	if courseID == 0 && flag.NArg() > 0 {
		if parsed, err := strconv.Atoi(flag.Arg(0)); err == nil {
			courseID = parsed
		}
	}
	if courseID <= 0 {
		fmt.Println("LearnItFirst Organiser - Sort downloaded course files into chapters and lessons")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  liforg -course <ID> -src <dir> -dst <dir> [options]")
		fmt.Println("  liforg <ID> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: liforg-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
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
	manager, err := organise.NewManager(settings, func(event organise.ProgressEvent) {
		if event.Level == organise.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case organise.LevelError:
			prefix = "❌ "
		case organise.LevelWarning:
			prefix = "⚠️  "
		case organise.LevelSuccess:
			prefix = "✅ "
		case organise.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating cache directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("📚 LearnItFirst Organiser")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	courseModel, err := fetchCourse(ctx, manager, courseID, *rescrapeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching course %d: %v\n", courseID, err)
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println()
		fmt.Printf("%s\n", courseModel.Title)
		for _, num := range courseModel.ChapterNumbers() {
			chapter := courseModel.Chapters[num]
			fmt.Printf("  %s\n", chapter.Name)
			for _, lessonNum := range chapter.LessonNumbers() {
				fmt.Printf("    %s\n", chapter.Lessons[lessonNum].Name)
			}
		}
		fmt.Println("\n[Dry run - not moving files]")
		return
	}

	fmt.Println("\n📂 Organising files...")
	fmt.Println()

	if err := manager.Organise(courseModel); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nOrganising cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error organising files: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Done! %s (%d chapters, %d lessons on record)\n",
		courseModel.Title, len(courseModel.Chapters), courseModel.LessonCount())
}
