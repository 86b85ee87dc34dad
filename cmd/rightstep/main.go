package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"rightstep/internal/analysis"
	"rightstep/internal/config"
	"rightstep/internal/content"
	"rightstep/internal/foodlog"
	"rightstep/internal/notify"
	"rightstep/internal/profile"
	"rightstep/internal/program"
	"rightstep/internal/storage"
	"rightstep/internal/update"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	var sink notify.Sink = notify.LogSink{}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		telegramSink, err := notify.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Warning: falling back to log notifications: %v", err)
		} else {
			sink = telegramSink
		}
	}

	clock := program.New(store, sink)
	if err := clock.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize program clock: %v", err)
	}

	logRepo := foodlog.NewRepository(store.DB())

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "register":
		registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
		name := registerCmd.String("name", "", "Your name")
		sex := registerCmd.String("sex", "", "Sex (M/F)")
		age := registerCmd.Int("age", 0, "Age in years")
		weight := registerCmd.Float64("weight", 0, "Weight in kg")
		height := registerCmd.Float64("height", 0, "Height in cm")
		registerCmd.Parse(os.Args[2:])

		p := &profile.Profile{Name: *name, Sex: *sex, Age: *age, Weight: *weight, Height: *height}
		if err := profile.Save(ctx, store, p); err != nil {
			log.Fatalf("Registration failed: %v", err)
		}
		if err := clock.StartProgram(ctx); err != nil {
			log.Fatalf("Failed to start program: %v", err)
		}
		fmt.Printf("Welcome to RightStep, %s! You are on day 1 of week 1.\n", p.Name)

	case "status":
		printStatus(clock)

	case "start":
		if err := clock.StartProgram(ctx); err != nil {
			log.Fatalf("Failed to start program: %v", err)
		}
		printStatus(clock)

	case "ack":
		if !clock.NewWeekUnlocked() {
			fmt.Println("No newly unlocked week to acknowledge.")
			break
		}
		if err := clock.AcknowledgeNewWeek(ctx); err != nil {
			log.Fatalf("Failed to acknowledge new week: %v", err)
		}
		fmt.Printf("Week %d acknowledged.\n", clock.State().LastSeenWeek)

	case "debug":
		debugCmd := flag.NewFlagSet("debug", flag.ExitOnError)
		week := debugCmd.Int("week", 0, "Preview this program week")
		day := debugCmd.Int("day", 0, "Preview this program day")
		debugCmd.Parse(os.Args[2:])

		if *week == 0 && *day == 0 {
			fmt.Println("Nothing to preview; pass -week or -day.")
			break
		}
		clock.SetDebugMode(ctx, true)
		if *day != 0 {
			if err := clock.SetDebugDay(*day); err != nil {
				log.Fatalf("Failed to set debug day: %v", err)
			}
		} else {
			if err := clock.SetDebugWeek(*week); err != nil {
				log.Fatalf("Failed to set debug week: %v", err)
			}
		}
		printStatus(clock)
		printWeekTheme(clock.EffectiveWeek())
		clock.SetDebugMode(ctx, false)

	case "week":
		target := clock.EffectiveWeek()
		if len(os.Args) > 2 {
			if _, err := fmt.Sscanf(os.Args[2], "%d", &target); err != nil {
				log.Fatalf("Invalid week number %q", os.Args[2])
			}
		}
		if target > clock.MaxAccessibleWeek() {
			log.Fatalf("Week %d is still locked; you have access up to week %d.", target, clock.MaxAccessibleWeek())
		}
		printWeekTheme(target)

	case "analyze":
		if len(os.Args) < 3 {
			log.Fatal("Usage: rightstep analyze <image-file>")
		}
		endpointURL, err := cfg.RequireEndpointURL()
		if err != nil {
			log.Fatalf("Cannot analyze: %v", err)
		}
		imageBytes, err := os.ReadFile(os.Args[2])
		if err != nil {
			log.Fatalf("Failed to read image: %v", err)
		}

		fmt.Println("Analyzing your meal...")
		result, err := analysis.NewClient(endpointURL).Analyze(
			ctx,
			base64.StdEncoding.EncodeToString(imageBytes),
			clock.EffectiveWeek(),
		)
		if err != nil {
			log.Fatalf("Analysis failed (%s): %v", analysis.KindOf(err), err)
		}

		verdict := "not ideal for this week"
		if result.Suitable {
			verdict = "a good fit for this week"
		}
		fmt.Printf("Detected: %s\n", strings.Join(result.DetectedItems, ", "))
		fmt.Printf("Verdict: %s.\n%s\n", verdict, result.Explanation)

		entry := foodlog.Entry{
			Timestamp:   time.Now(),
			Description: strings.Join(result.DetectedItems, ", "),
			Week:        clock.EffectiveWeek(),
			Suitable:    &result.Suitable,
		}
		if err := logRepo.Add(ctx, entry); err != nil {
			log.Printf("Warning: failed to save to food log: %v", err)
		}

	case "log":
		entries, err := logRepo.ListDay(ctx, time.Now())
		if err != nil {
			log.Fatalf("Failed to list food log: %v", err)
		}
		if len(entries) == 0 {
			fmt.Println("Nothing logged today.")
			break
		}
		for _, e := range entries {
			marker := " "
			if e.Suitable != nil {
				if *e.Suitable {
					marker = "+"
				} else {
					marker = "-"
				}
			}
			fmt.Printf("%s %s  %s\n", marker, e.Timestamp.Format("15:04"), e.Description)
		}

	case "reset":
		resetCmd := flag.NewFlagSet("reset", flag.ExitOnError)
		confirmed := resetCmd.Bool("yes", false, "Confirm wiping all program data")
		resetCmd.Parse(os.Args[2:])
		if !*confirmed {
			log.Fatal("Reset wipes all program data. Re-run with -yes to confirm.")
		}
		if err := clock.ResetAll(ctx); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		fmt.Println("All program data cleared.")

	case "version":
		fmt.Printf("rightstep %s\n", update.Version)
		available, err := update.CheckSelf()
		if err != nil {
			log.Fatalf("Update check failed: %v", err)
		}
		if available {
			fmt.Println("A newer version is available.")
		} else {
			fmt.Println("You are up to date.")
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printStatus(clock *program.Clock) {
	s := clock.State()
	if !clock.Started() {
		fmt.Println("Program not started yet. Run 'rightstep register' to begin.")
		return
	}
	fmt.Printf("Week %d, day %d of the program", s.EffectiveWeek, s.EffectiveDay)
	if s.DebugActive {
		fmt.Printf(" (debug preview; actually week %d, day %d)", s.ActualWeek, s.ActualDay)
	}
	fmt.Println()
	fmt.Printf("Content unlocked through week %d.\n", s.MaxAccessibleWeek)
	if s.NewWeekUnlocked {
		fmt.Println("A new week has unlocked! Run 'rightstep ack' to mark it seen.")
	}
}

func printWeekTheme(week int) {
	theme, err := content.ForWeek(week)
	if err != nil {
		log.Fatalf("Failed to load week %d: %v", week, err)
	}
	fmt.Printf("\n=== WEEK %d: %s ===\n%s\n", theme.Week, theme.Title, theme.Theme)
	for _, focus := range theme.Focus {
		fmt.Printf("- %s\n", focus)
	}
}

func printUsage() {
	fmt.Println("Usage: rightstep <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  register   Create your profile and start the 12-week program")
	fmt.Println("  status     Show where you are in the program")
	fmt.Println("  start      Start the program (no-op if already started)")
	fmt.Println("  ack        Acknowledge a newly unlocked week")
	fmt.Println("  week [n]   Show the theme for an unlocked week")
	fmt.Println("  debug      Preview another week/day (-week N | -day N)")
	fmt.Println("  analyze    Analyze a food photo for this week")
	fmt.Println("  log        Show today's food log")
	fmt.Println("  reset      Wipe all program data (-yes to confirm)")
	fmt.Println("  version    Show version and check for updates")
}
