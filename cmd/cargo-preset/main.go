package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"cargo-preset/internal/app"
	"cargo-preset/internal/config"
	"cargo-preset/pkg/models"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()

	// cargoPath is the real cargo binary, e.g.
	// -ldflags "-X main.cargoPath=$HOME/.cargo/bin/cargo"
	cargoPath = ""
)

// versionEnv makes the wrapper describe itself instead of running cargo.
const versionEnv = "CARGO_PRESET_VERSION"

var rootCmd = &cobra.Command{
	Use:   "cargo-preset [cargo arguments]",
	Short: "Run cargo with project presets applied",
	Long: `cargo-preset stands in front of cargo. It looks for .cargo/presets.toml in the
current directory or any parent, picks the default preset (or the one named
with --preset <name>) and adds its features, default-features and target
settings to build, check, test, run, rustc, clippy and metadata commands
before handing over to cargo.

Every other argument is passed to cargo unchanged.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv(versionEnv) != "" {
			printVersion(cmd.ErrOrStderr())
			return nil
		}

		return app.Run(newRequest(args), cargoPath)
	},
}

// newRequest points the request at the wrapper's settings file.
func newRequest(args []string) *models.InvocationRequest {
	request := models.NewInvocationRequest(args)
	if path, err := config.DefaultPath(); err == nil {
		request.ConfigPath = path
	}
	return request
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "cargo-preset version %s\n", version)
	fmt.Fprintf(w, "  commit: %s\n", commit)
	fmt.Fprintf(w, "  built: %s\n", date)
	fmt.Fprintf(w, "  go version: %s\n", goVersion)
	fmt.Fprintf(w, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if cargoPath != "" {
		fmt.Fprintf(w, "  cargo: %s\n", cargoPath)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
