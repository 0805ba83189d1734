package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/locale"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/speechapi"
)

// platform is what the CLI commands need from the speech platform.
type platform interface {
	batch.Platform
	locale.ModelLister
}

// dialPlatform creates the platform client. Tests replace it.
var dialPlatform = func(cfg *AppConfig, log *logger.Logger) (platform, error) {
	if err := cfg.Speech.Config.Validate(); err != nil {
		return nil, &configError{err: err}
	}
	return speechapi.New(cfg.Speech.Config, log)
}

// cliEnv is the configuration and clients shared by the platform commands.
type cliEnv struct {
	cfg      *AppConfig
	log      *logger.Logger
	platform platform
}

func newCLIEnv(cmd *cobra.Command, flags *rootFlags) (*cliEnv, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, &configError{err: err}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &configError{err: err}
	}
	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, cmd.ErrOrStderr())

	p, err := dialPlatform(cfg, log)
	if err != nil {
		return nil, err
	}
	return &cliEnv{cfg: cfg, log: log, platform: p}, nil
}

func (e *cliEnv) service() *batch.Service {
	return batch.NewService(e.platform, e.cfg.Speech.Batch, e.log)
}

func newJobsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and manage batch transcription jobs",
	}
	cmd.AddCommand(
		newJobsListCommand(flags),
		newJobsStatusCommand(flags),
		newJobsFilesCommand(flags),
		newJobsResultsCommand(flags),
		newJobsDeleteCommand(flags),
	)
	return cmd
}

// runJob loads the environment and calls fn with the batch service.
func runJob(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, svc *batch.Service) (any, *batch.Degraded, error)) error {
	env, err := newCLIEnv(cmd, flags)
	if err != nil {
		return err
	}
	out, deg, err := fn(cmd.Context(), env.service())
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, flags.output, out); err != nil {
		return err
	}
	if deg != nil {
		return &DegradedError{Reason: deg.Reason}
	}
	return nil
}

func newJobsListCommand(flags *rootFlags) *cobra.Command {
	var (
		skip, top int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs with their input files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if skip < 0 || top < 0 {
				return fmt.Errorf("--skip and --top must not be negative")
			}
			return runJob(cmd, flags, func(ctx context.Context, svc *batch.Service) (any, *batch.Degraded, error) {
				res := svc.List(ctx, batch.ListRequest{Skip: skip, Top: top, ForceRefresh: true})
				return res, res.Degraded, nil
			})
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 0, "Number of jobs to skip")
	cmd.Flags().IntVar(&top, "top", 0, "Page size (default from config)")
	return cmd
}

func newJobsStatusCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, flags, func(ctx context.Context, svc *batch.Service) (any, *batch.Degraded, error) {
				job, deg := svc.GetStatus(ctx, args[0])
				if deg != nil {
					return map[string]any{"id": args[0], "degraded": deg}, deg, nil
				}
				return job, nil, nil
			})
		},
	}
}

func newJobsFilesCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "files <job-id>",
		Short: "List a job's transcription result files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, flags, func(ctx context.Context, svc *batch.Service) (any, *batch.Degraded, error) {
				files, deg := svc.ListResultFiles(ctx, args[0])
				return files, deg, nil
			})
		},
	}
}

func newJobsResultsCommand(flags *rootFlags) *cobra.Command {
	var (
		indices []int
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "results <job-id>",
		Short: "Download and merge a completed job's transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, flags, func(ctx context.Context, svc *batch.Service) (any, *batch.Degraded, error) {
				res, err := svc.Results(ctx, args[0], indices)
				if err != nil {
					return nil, nil, err
				}
				if !raw {
					res.RawJSON = ""
				}
				return res, nil, nil
			})
		},
	}
	cmd.Flags().IntSliceVar(&indices, "files", nil, "Result file indices to merge (default the first file)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Include the downloaded payloads")
	return cmd
}

func newJobsDeleteCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a job from the platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, flags, func(ctx context.Context, svc *batch.Service) (any, *batch.Degraded, error) {
				if err := svc.Delete(ctx, args[0]); err != nil {
					return nil, nil, err
				}
				return map[string]any{
					"success": true,
					"message": fmt.Sprintf("Job %s deleted successfully", args[0]),
				}, nil, nil
			})
		},
	}
}
