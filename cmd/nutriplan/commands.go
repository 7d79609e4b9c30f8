package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nutrikit/nutriplan/internal/config"
	"github.com/nutrikit/nutriplan/internal/discovery"
	"github.com/nutrikit/nutriplan/internal/planner"
	"github.com/nutrikit/nutriplan/internal/tui"
)

// Command flags
var (
	backendURL  string
	httpTimeout int
	retries     int
	scanTimeout int
	saveBackend bool
	noPrefill   bool
)

func init() {
	// Common flags for backend commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Backend base URL (skips configuration and discovery)")
	rootCmd.PersistentFlags().IntVar(&httpTimeout, "timeout", 30, "HTTP timeout in seconds")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", 3, "Number of retries for failed requests")

	// Add subcommands directly to root
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(configCmd)
}

// planCmd launches the interactive planner TUI
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Launch the interactive planner",
	Long: `Launch the interactive planning form.

The form collects your details across three sections, shows live estimates
(projected weight change, BMR) while you type, and submits the request to
the active backend. The resulting plan is shown with its calorie target,
macro breakdown, meal plan and recipes.`,
	Example: `  # Launch the planner against the configured backend
  nutriplan plan
  # Or simply (plan is default):
  nutriplan

  # Launch against a specific backend
  nutriplan plan --backend http://192.168.1.50:5000

  # Start from a blank form, ignoring saved prefill values
  nutriplan plan --no-prefill`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&noPrefill, "no-prefill", false, "Ignore saved profile prefill values")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the planner needs an interactive terminal; use subcommands for scripting")
	}

	client, registry, err := resolveClient(true)
	if err != nil {
		return err
	}

	var defaults map[string]string
	if !noPrefill && registry != nil {
		defaults = registry.GetProfile().FormDefaults()
	}

	if err := tui.Run(client, defaults); err != nil {
		return fmt.Errorf("planner error: %w", err)
	}
	return nil
}

// discoverCmd scans the network for backends
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover Nutriplan backends on the network",
	Long: `Discover Nutriplan backends using mDNS/DNS-SD.

This command listens for backends advertising the _nutriplan._tcp service
and displays each one with its address, port and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  nutriplan discover

  # Quick 3-second scan
  nutriplan discover --scan-timeout 3

  # Record the first backend found as the active one
  nutriplan discover --save`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
	discoverCmd.Flags().BoolVar(&saveBackend, "save", false, "Save the first backend found as the active backend")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for Nutriplan backends (timeout: %ds)...\n\n", scanTimeout)

	services, err := discovery.ScanForServices(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		fmt.Println("No backends found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the backend is running and on the same network")
		fmt.Println("  - Check that mDNS/Bonjour traffic is allowed on your network")
		fmt.Println("  - Try increasing --scan-timeout for slower networks")
		fmt.Println("  - Use --backend flag to specify the URL manually")
		return nil
	}

	fmt.Printf("Found %d backend(s):\n\n", len(services))

	for i, service := range services {
		fmt.Printf("%d. %s\n", i+1, service.Name)
		fmt.Printf("   URL: %s\n", service.BaseURL())
		if v := service.Version(); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		fmt.Println()
	}

	if saveBackend {
		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		first := services[0]
		registry.UpdateBackendLastSeen(first.Name, first.BaseURL(), first.Version())
		registry.SetActiveBackend(first.Name, first.BaseURL())
		if err := registry.Save(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Printf("Saved %q as the active backend.\n", first.Name)
		return nil
	}

	fmt.Println("Use 'nutriplan discover --save' to record the first backend")
	fmt.Println("Use 'nutriplan --backend <url>' to use one directly")

	return nil
}

// recipeCmd fetches one recipe by ID
var recipeCmd = &cobra.Command{
	Use:   "recipe <id>",
	Short: "Fetch a recipe from the backend",
	Long: `Fetch the details of one recipe by its numeric ID.

Recipe IDs appear in the plan result; this command retrieves the full
recipe with its ingredient list and timings.`,
	Example: `  nutriplan recipe 3

  nutriplan recipe 3 --backend http://192.168.1.50:5000`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipe,
}

func runRecipe(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid recipe id %q: %w", args[0], err)
	}

	client, _, err := resolveClient(false)
	if err != nil {
		return err
	}

	recipe, err := client.GetRecipe(id)
	if err != nil {
		if hint := planner.GetTroubleshootingHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		return fmt.Errorf("failed to fetch recipe %d: %w", id, err)
	}

	fmt.Println(recipe.Title)
	if recipe.Description != "" {
		fmt.Println(recipe.Description)
	}
	fmt.Println()
	if len(recipe.Ingredients) > 0 {
		fmt.Println("Ingredients:")
		for _, ingredient := range recipe.Ingredients {
			fmt.Printf("  - %s\n", ingredient)
		}
		fmt.Println()
	}
	fmt.Printf("Prep: %s  Cook: %s  Serves: %s\n", recipe.PrepTime, recipe.CookTime, recipe.Servings)

	return nil
}

// configCmd shows and edits the stored configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the stored configuration",
	Long: `Show the configuration file location, known backends and the active
selection.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configSetBackendCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("Configuration file: %s\n\n", path)
	fmt.Printf("Active backend: %s (%s)\n", orNone(registry.ActiveBackend), registry.ActiveBackendURL())

	if len(registry.Backends) > 0 {
		fmt.Println("\nKnown backends:")
		for name, backend := range registry.Backends {
			line := fmt.Sprintf("  %s  %s", name, backend.URL)
			if backend.Version != "" {
				line += "  (v" + backend.Version + ")"
			}
			if !backend.LastSeen.IsZero() {
				line += "  last seen " + backend.LastSeen.Format("2006-01-02 15:04")
			}
			fmt.Println(line)
		}
	}

	defaults := registry.GetProfile().FormDefaults()
	if len(defaults) > 0 {
		fmt.Println("\nProfile prefill:")
		for key, value := range defaults {
			fmt.Printf("  %s = %s\n", key, value)
		}
	}

	return nil
}

var configSetBackendCmd = &cobra.Command{
	Use:   "set-backend <name> <url>",
	Short: "Record a backend and make it the active one",
	Example: `  nutriplan config set-backend kitchen-pi http://192.168.1.50:5000

  nutriplan config set-backend localhost http://127.0.0.1:5000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		registry.SetActiveBackend(args[0], args[1])
		if err := registry.Save(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Printf("Active backend is now %q (%s)\n", args[0], args[1])
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.CreateDefaultConfig(); err != nil {
			return fmt.Errorf("failed to create configuration: %w", err)
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("Created default configuration at %s\n", path)
		return nil
	},
}

// resolveClient builds the HTTP client for the selected backend. Precedence:
// the --backend flag, then the configured active backend, then (when
// allowDiscover and auto-discovery is enabled) a quick mDNS scan, then the
// localhost default.
func resolveClient(allowDiscover bool) (*planner.Client, *config.Registry, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	url := backendURL
	if url == "" {
		url = registry.ActiveBackendURL()

		// Nothing explicitly configured: try a quick scan when enabled
		if allowDiscover && registry.ActiveBackend == "" && registry.Preferences.AutoDiscover {
			if services, err := discovery.QuickScan(); err == nil && len(services) > 0 {
				first := services[0]
				fmt.Printf("Discovered backend %q at %s\n", first.Name, first.BaseURL())
				registry.UpdateBackendLastSeen(first.Name, first.BaseURL(), first.Version())
				url = first.BaseURL()
			}
		}
	}

	client := planner.NewClient(url)
	client.SetTimeout(time.Duration(httpTimeout) * time.Second)
	client.SetRetry(retries, planner.DefaultRetryDelay)

	return client, registry, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
