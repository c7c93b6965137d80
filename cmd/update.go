package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/cloudagents"

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records build information injected by the linker
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// skipInit replaces initializeApp on commands that need no configuration
func skipInit(cmd *cobra.Command, args []string) error {
	return nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInit,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cloudagents %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update cloudagents to the latest release",
	Long:              `Check GitHub for a newer release of cloudagents and replace the running binary with it.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInit,
	RunE:              runUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd, updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Checking for updates (current version %s)...\n", current)

	latest, found, err := selfupdate.DetectLatest(cmd.Context(), selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(out, "✓ Already up to date (%s)\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(cmd.Context(), latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "✓ Updated to version %s\n", latest.Version())
	if notes := latest.ReleaseNotes; notes != "" {
		fmt.Fprintf(out, "\nRelease notes:\n%s\n", notes)
	}
	return nil
}
