package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/app"
	"github.com/geoquiz-service/internal/pkg/validator"
	"github.com/geoquiz-service/internal/repository/postgres"
	"github.com/geoquiz-service/internal/usecase/dto"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		db, err := postgres.New(&e.cfg.Database, e.log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(e.ctx); err != nil {
			return err
		}
		e.log.Info("Migrations applied")
		return nil
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an exercise synchronously",
	Example: `  geoquizctl build --name Stockholm \
    --area "59.30,18.00;59.36,18.00;59.36,18.12;59.30,18.12"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(cmd)
		if err != nil {
			return err
		}

		return withUseCases(cmd, func(e *env, uc *app.UseCases) error {
			result, err := uc.Exercise.BuildExercise(e.ctx, *req)
			if err != nil {
				return err
			}
			e.log.Info("Exercise built",
				zap.Int64("exercise_id", result.ExerciseID),
				zap.Int("entities", result.EntityCount))
			return printJSON(cmd, result)
		})
	},
}

var enqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Enqueue an exercise build job for the worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(cmd)
		if err != nil {
			return err
		}

		return withUseCases(cmd, func(e *env, uc *app.UseCases) error {
			job, err := uc.BuildJobs.Enqueue(e.ctx, *req)
			if err != nil {
				return err
			}
			return printJSON(cmd, job)
		})
	},
}

var jobCmd = &cobra.Command{
	Use:   "job <job-id>",
	Short: "Show build job status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid job id: %w", err)
		}

		return withUseCases(cmd, func(e *env, uc *app.UseCases) error {
			status, err := uc.BuildJobs.Status(e.ctx, jobID)
			if err != nil {
				return err
			}
			return printJSON(cmd, status)
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUseCases(cmd, func(e *env, uc *app.UseCases) error {
			exercises, err := uc.Exercise.ListExercises(e.ctx)
			if err != nil {
				return err
			}
			for _, ex := range exercises {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", ex.ID, ex.Name, ex.CreatedAt.Format("2006-01-02"))
			}
			return nil
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <exercise-id>",
	Short: "Show exercise progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exercise id: %w", err)
		}

		return withUseCases(cmd, func(e *env, uc *app.UseCases) error {
			progress, err := uc.Exercise.Progress(e.ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d%% (%d/%d levels)\n",
				progress.Percentage, progress.PassedLevels, progress.TotalLevels)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{buildCmd, enqueueCmd} {
		c.Flags().String("name", "", "Exercise name")
		c.Flags().String("area", "", `Working area polygon as "lat,lon;lat,lon;..."`)
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("area")
	}
}

func buildRequest(cmd *cobra.Command) (*dto.BuildExerciseRequest, error) {
	name, _ := cmd.Flags().GetString("name")
	area, _ := cmd.Flags().GetString("area")

	points, err := parseArea(area)
	if err != nil {
		return nil, err
	}

	req := &dto.BuildExerciseRequest{Name: name, WorkingArea: points}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	return req, nil
}
