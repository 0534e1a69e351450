package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"usersearch/internal/config"
	"usersearch/internal/eventbus"
	"usersearch/internal/search"
	"usersearch/internal/ui"
	"usersearch/internal/ui/commands"
)

func main() {
	var configPath, endpointURL string
	var writeConfig bool
	flag.StringVar(&configPath, "config", "", "Path to usersearch.toml (default: user config dir)")
	flag.StringVar(&configPath, "c", "", "Path to usersearch.toml (shorthand)")
	flag.StringVar(&endpointURL, "url", "", "Search endpoint URL (overrides USERSEARCH_BASE_URL)")
	flag.BoolVar(&writeConfig, "write-config", false, "Save the resolved configuration and exit")
	flag.Parse()

	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	} else {
		configSvc = config.NewConfigService()
	}

	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if endpointURL != "" {
		cfg.Endpoint = endpointURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", configSvc.Path())
		return
	}
	if cfg.Endpoint == "" {
		fmt.Fprintf(os.Stderr, "Error: no search endpoint configured; set USERSEARCH_BASE_URL, pass -url, or add endpoint to %s\n", configSvc.Path())
		os.Exit(1)
	}

	// Set up logging. The log file is closed after the bus has drained.
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	bus := eventbus.New()
	defer bus.Close()
	subscribeDiagnostics(bus)

	timeout, _ := cfg.Timeout() // validated by Load
	client := search.NewClient(search.Config{Timeout: timeout})
	executor := commands.NewExecutor(client, func() string { return cfg.Endpoint }, bus)

	uiModel := ui.NewModel(cfg, executor, ui.NewPager())

	var opts []tea.ProgramOption
	if cfg.UISettings.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(uiModel, opts...)

	log.Printf("Config loaded from %s", configSvc.Path())
	log.Printf("Starting UI against %s", cfg.Endpoint)
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		bus.Close()
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// subscribeDiagnostics writes the search lifecycle to the log
func subscribeDiagnostics(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventSearchStarted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchStartedEvent); ok {
			log.Printf("Search %d started: POST %s", event.RequestID, event.Endpoint)
		}
	})
	bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchCompletedEvent); ok {
			log.Printf("Search %d returned %d records in %s", event.RequestID, event.Count, event.Elapsed)
		}
	})
	bus.Subscribe(eventbus.EventSearchNotFound, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchNotFoundEvent); ok {
			log.Printf("Search %d found nothing in %s", event.RequestID, event.Elapsed)
		}
	})
	bus.Subscribe(eventbus.EventSearchCancelled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchCancelledEvent); ok {
			log.Printf("Search %d canceled", event.RequestID)
		}
	})
	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("Error fetching data for search %d: %v", event.RequestID, event.Err)
		}
	})
}
