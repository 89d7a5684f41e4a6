package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pentagon/config"
	"github.com/sarchlab/pentagon/simulation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sequencer and its monitor.",
	Long: "`serve` runs the sequencer until interrupted. Settings come from " +
		"PENTAGON_* environment variables and .env files; flags override them.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		c, err := serveConfig(cmd)
		if err != nil {
			log.Fatalf("Error loading configuration: %v", err)
		}

		builder, err := simulation.MakeBuilderFromConfig(c)
		if err != nil {
			log.Fatalf("Error loading plan: %v", err)
		}

		sim, err := builder.Build()
		if err != nil {
			log.Fatalf("Error starting sequencer: %v", err)
		}

		atexit.Register(sim.Terminate)

		if c.OpenBrowser {
			if err := browser.OpenURL(sim.URL()); err != nil {
				log.Printf("Could not open browser: %v", err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(),
			os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := sim.Run(ctx); err != nil {
			log.Printf("Sequencer stopped: %v", err)
			atexit.Exit(1)
		}

		atexit.Exit(0)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.String("addr", config.DefaultAddr, "Address of the HTTP monitor")
	f.String("serial", "", "Serial device of the signal controller")
	f.String("record", "",
		"SQLite trace file, or \""+simulation.AutoRecordPath+"\" to name it after the session")
	f.String("plan", "", "YAML signal plan applied at start-up")
	f.Bool("verbose", false, "Also log snapshots and phase changes")
	f.Bool("open", false, "Open the dashboard in a browser")
	f.StringSlice("env-file", []string{".env"}, "Files to load environment variables from")
}

// serveConfig loads the environment and lets explicitly set flags win.
func serveConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()

	envFiles, _ := f.GetStringSlice("env-file")

	c, err := config.Load(envFiles...)
	if err != nil {
		return c, err
	}

	if f.Changed("addr") {
		c.Addr, _ = f.GetString("addr")
	}

	if f.Changed("serial") {
		c.SerialDevice, _ = f.GetString("serial")
	}

	if f.Changed("record") {
		c.RecordPath, _ = f.GetString("record")
	}

	if f.Changed("plan") {
		c.PlanFile, _ = f.GetString("plan")
	}

	if f.Changed("verbose") {
		c.Verbose, _ = f.GetBool("verbose")
	}

	if f.Changed("open") {
		c.OpenBrowser, _ = f.GetBool("open")
	}

	return c, nil
}
