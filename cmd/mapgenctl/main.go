package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mapgenworks/mapgenctl/internal/app"
	"github.com/mapgenworks/mapgenctl/internal/buildinfo"
	"github.com/mapgenworks/mapgenctl/internal/pipeline"
)

var (
	configPath string
	debugFlag  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "mapgenctl",
	Short:         "MapGenerator developer control CLI",
	Long:          "mapgenctl submits jobs into the map generation pipeline, watches stage directories, and presents live merged logs for running jobs.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/mapgenctl/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a diagnostics log under the log root")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)
}

func newSession() (*app.Session, error) {
	return app.NewSession(app.Options{ConfigPath: configPath, Debug: debugFlag})
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// --- submit ---

var (
	submitWidth  int
	submitHeight int
	submitWatch  bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a heightmap job into the pipeline inbox",
	RunE: func(_ *cobra.Command, _ []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		jobID, err := session.SubmitJob(submitWidth, submitHeight)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted job: %s\n", jobID)

		if submitWatch {
			ctx, cancel := signalContext()
			defer cancel()
			fmt.Println("Watching for job completion...")
			return pipeline.Watch(ctx, session.Config.PipelineRoot, "heightmap", time.Second, os.Stdout)
		}
		return nil
	},
}

func init() {
	submitCmd.Flags().IntVar(&submitWidth, "width", 0, "map width in cells")
	submitCmd.Flags().IntVar(&submitHeight, "height", 0, "map height in cells")
	submitCmd.Flags().BoolVar(&submitWatch, "watch", false, "watch the heightmap stage after submitting")
	submitCmd.MarkFlagRequired("width")
	submitCmd.MarkFlagRequired("height")
}

// --- run ---

var (
	runWidth  int
	runHeight int
	runUntil  string
	runTUI    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full pipeline test job",
	RunE: func(_ *cobra.Command, _ []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		ctx, cancel := signalContext()
		defer cancel()

		jobID, err := session.RunPipeline(ctx, app.RunOptions{
			Width:  runWidth,
			Height: runHeight,
			Until:  runUntil,
			TUI:    runTUI,
			Out:    os.Stdout,
		})
		if err != nil {
			if jobID != "" {
				return fmt.Errorf("job %s: %w", jobID, err)
			}
			return err
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runWidth, "width", 0, "map width in cells")
	runCmd.Flags().IntVar(&runHeight, "height", 0, "map height in cells")
	runCmd.Flags().StringVar(&runUntil, "until", "treeplanter",
		"final stage to wait for ("+strings.Join(pipeline.Stages, ", ")+")")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "show live progress TUI")
	runCmd.MarkFlagRequired("width")
	runCmd.MarkFlagRequired("height")
}

// --- logs ---

var logsCmd = &cobra.Command{
	Use:   "logs <job-id>",
	Short: "View live merged logs for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		ctx, cancel := signalContext()
		defer cancel()
		return session.ViewLogs(ctx, args[0])
	},
}

// --- jobs ---

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List known jobs, newest first",
	RunE: func(_ *cobra.Command, _ []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		jobs := pipeline.DiscoverJobs(session.Config.LogRoot)
		if len(jobs) == 0 {
			fmt.Println("no jobs")
			return nil
		}

		fmt.Printf("%-38s %-20s %s\n", "JOB", "LAST ACTIVITY", "STAGES")
		for _, job := range jobs {
			fmt.Printf("%-38s %-20s %s\n",
				job.JobID,
				job.LastModified.UTC().Format("2006-01-02 15:04:05"),
				strings.Join(job.Stages, ", "))
		}
		return nil
	},
}

// --- watch ---

var watchStage string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a stage's inbox/outbox/archive directories",
	RunE: func(_ *cobra.Command, _ []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		ctx, cancel := signalContext()
		defer cancel()
		return pipeline.Watch(ctx, session.Config.PipelineRoot, watchStage, time.Second, os.Stdout)
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchStage, "stage", "",
		"pipeline stage ("+strings.Join(pipeline.Stages, ", ")+")")
	watchCmd.MarkFlagRequired("stage")
}

// --- clean ---

var cleanStage string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all files from a stage's inbox/outbox/archive",
	RunE: func(_ *cobra.Command, _ []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		return pipeline.Clean(session.Config.PipelineRoot, cleanStage, os.Stdout)
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanStage, "stage", "",
		"pipeline stage ("+strings.Join(pipeline.Stages, ", ")+")")
	cleanCmd.MarkFlagRequired("stage")
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("mapgenctl %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}
