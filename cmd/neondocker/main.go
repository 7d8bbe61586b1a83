package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"neondocker/internal/app"
	"neondocker/internal/config"
	"neondocker/internal/errors"
	"neondocker/pkg/session"
)

// version is set at build time via ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "neondocker [options] [standalone-application...]",
	Short:   "neondocker - run a KDE neon desktop session in a container",
	Version: version,
	Long: `neondocker downloads a pre-built KDE neon desktop container image and runs
it inside a nested X server window, or runs a single application from the
image against the host display.

Any trailing arguments are run as a standalone application inside the
container instead of a full desktop session.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		edition, _ := cmd.Flags().GetString("edition")
		allApps, _ := cmd.Flags().GetBool("all")
		forcePull, _ := cmd.Flags().GetBool("pull")
		keepAlive, _ := cmd.Flags().GetBool("keep-alive")
		reattach, _ := cmd.Flags().GetBool("reattach")
		alwaysNew, _ := cmd.Flags().GetBool("new")
		wayland, _ := cmd.Flags().GetBool("wayland")
		configPath, _ := cmd.Flags().GetString("config")

		settings, err := config.Load(configPath)
		if err != nil {
			errors.HandleError(errors.NewConfigError(
				"Failed to load settings file",
				err.Error(),
				"Fix or remove the settings file and run again",
				err,
			))
			os.Exit(1)
		}

		cfg, err := session.New(session.Options{
			Edition:   edition,
			AllApps:   allApps,
			ForcePull: forcePull,
			KeepAlive: keepAlive,
			Reattach:  reattach,
			AlwaysNew: alwaysNew,
			Wayland:   wayland,
			Command:   args,
		})
		if err != nil {
			errors.HandleError(errors.NewEditionError(
				"Invalid edition selected",
				err.Error(),
				"Pick one of: user-lts, user, dev-stable, dev-unstable",
				err,
			))
			os.Exit(1)
		}

		if err := app.Run(context.Background(), cfg, settings); err != nil {
			errors.HandleError(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().BoolP("pull", "p", false, "Force a fresh download of the image")
	rootCmd.Flags().BoolP("all", "a", false, "Use the 'all apps' image instead of the plasma desktop image")
	rootCmd.Flags().StringP("edition", "e", "user", "Edition to run: user-lts, user, dev-stable, dev-unstable")
	rootCmd.Flags().BoolP("keep-alive", "k", false, "Do not delete the container on exit")
	rootCmd.Flags().BoolP("reattach", "r", false, "Reuse an existing container for the image (implies --keep-alive)")
	rootCmd.Flags().BoolP("new", "n", false, "Always create a fresh container even if one exists")
	rootCmd.Flags().BoolP("wayland", "w", false, "Run a composited Wayland session instead of a windowed one")
	rootCmd.Flags().String("config", "", "Path to an optional settings file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		errors.HandleError(err)
		os.Exit(1)
	}
}
