package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/afariz/mediashelf/internal/catalog"
	"github.com/afariz/mediashelf/internal/config"
	"github.com/afariz/mediashelf/internal/domain"
	"github.com/afariz/mediashelf/internal/favorites"
	"github.com/afariz/mediashelf/internal/log"
	"github.com/afariz/mediashelf/internal/remote"
	"github.com/afariz/mediashelf/internal/reviews"
	"github.com/afariz/mediashelf/internal/search"
	"github.com/afariz/mediashelf/internal/session"
	"github.com/afariz/mediashelf/internal/store"
	"github.com/afariz/mediashelf/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("mediashelf %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting mediashelf", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	client := remote.NewClient(cfg.Server.URL, cfg.Server.APIKey, logger)

	user, err := login(client, cfg)
	if err != nil {
		return err
	}

	db, err := store.Open(config.DataPath())
	if err != nil {
		logger.Warn("local store unavailable, running without persistence", "error", err)
		db, _ = store.Open("")
	}
	defer db.Close()

	cache := catalog.NewCache(client, db, logger)
	cache.WarmStart()

	admin := catalog.NewCommands(client, logger)
	loader := reviews.NewLoader(client, logger)
	favs := favorites.NewStore(db, logger)
	sess := session.NewController(logger)
	quick := search.NewService(cache, logger)

	model := tui.NewModel(cache, admin, loader, favs, sess, quick, user, cfg.UI.PageSize, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI", "user", user.Username)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// login authenticates against the catalog server, prompting for
// credentials on the terminal.
func login(client *remote.Client, cfg *config.Config) (domain.User, error) {
	reader := bufio.NewReader(os.Stdin)

	prompt := "Username: "
	if cfg.Server.Username != "" {
		prompt = fmt.Sprintf("Username [%s]: ", cfg.Server.Username)
	}
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to read input: %w", err)
	}
	username := strings.TrimSpace(input)
	if username == "" {
		username = cfg.Server.Username
	}
	if username == "" {
		return domain.User{}, fmt.Errorf("username cannot be empty")
	}

	// Prompt for password (hidden input)
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := client.Authenticate(ctx, username, string(passwordBytes))
	if err != nil {
		return domain.User{}, fmt.Errorf("authentication failed: %w", err)
	}

	if err := config.SaveCredentials(user.Username, ""); err != nil {
		slog.Warn("failed to remember username", "error", err)
	}

	return user, nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to MediaShelf!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var serverURL string
	for {
		fmt.Print("Enter the catalog server URL (e.g., https://myproject.example.co): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimSpace(input)
		if serverURL != "" {
			break
		}
		fmt.Println("Server URL cannot be empty. Please try again.")
	}

	var apiKey string
	for {
		fmt.Print("Enter the project API key: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		apiKey = strings.TrimSpace(input)
		if apiKey != "" {
			break
		}
		fmt.Println("API key cannot be empty. Please try again.")
	}

	cfg.Server.URL = serverURL
	cfg.Server.APIKey = apiKey

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run mediashelf again to log in and start browsing.")

	return nil
}
