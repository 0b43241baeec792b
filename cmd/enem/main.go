package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/app"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/operations"
)

// flags holds the persistent command line options
type flags struct {
	configFile string
	baseDir    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "enem",
		Short:         "ENEM, school census and municipality indicators pipeline",
		Long:          `enem cleans and merges the ENEM microdata, the school census and the municipal indicators, then renders the analysis workbooks and the dashboard table.`,
		Version:       app.VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&f.configFile, "config", "c", "", "YAML config file (default: config.yaml or configs/config.yaml)")
	root.PersistentFlags().StringVar(&f.baseDir, "base-dir", "", "Base directory for inputs and outputs (default: working directory)")

	root.AddCommand(
		jobCmd(f, operations.JobIngest, "Load, clean and merge the raw inputs", func(ctx context.Context, a *app.Application) error {
			_, err := a.RunIngest(ctx)
			return err
		}),
		jobCmd(f, operations.JobReport, "Render the analyses, visualizations and dashboard table", func(ctx context.Context, a *app.Application) error {
			_, err := a.RunReport(ctx)
			return err
		}),
		jobCmd(f, "run", "Run ingest then report", func(ctx context.Context, a *app.Application) error {
			return a.Run(ctx)
		}),
	)
	return root
}

// jobCmd builds a subcommand that wires the application and runs one job.
func jobCmd(f *flags, use, short string, job func(context.Context, *app.Application) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			application, err := app.NewApplication(app.Options{
				ConfigFile: f.configFile,
				BaseDir:    f.baseDir,
			})
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := application.Close(context.WithoutCancel(cmd.Context())); closeErr != nil && err == nil {
					err = fmt.Errorf("failed to close application: %w", closeErr)
				}
			}()

			return job(cmd.Context(), application)
		},
	}
}
