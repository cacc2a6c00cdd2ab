package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/medisense/backend/internal/adapters/reference"
	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/evaluation"
	"github.com/medisense/backend/internal/infrastructure/observability"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		goldenPath string
		k          int
		minTop1    float64
		minMRR     float64
		maxFailed  int
	)

	cmd := &cobra.Command{
		Use:          "evaluate",
		Short:        "Score the condition inference against the golden symptom cases",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			observability.InitLogger("medisense-evaluate", "development")
			ctx := context.Background()

			catalog := reference.NewConditionCatalog()
			conditions, err := catalog.List(ctx)
			if err != nil {
				return err
			}
			names := make([]string, len(conditions))
			for i, c := range conditions {
				names[i] = c.Name
			}

			if _, err := os.Stat("backend/" + goldenPath); err == nil {
				goldenPath = "backend/" + goldenPath
			}
			cases, err := evaluation.LoadGoldenCases(goldenPath)
			if err != nil {
				return err
			}
			if err := evaluation.ValidateGoldenCases(cases, names); err != nil {
				return fmt.Errorf("invalid golden cases: %w", err)
			}

			runner := evaluation.NewRunner(services.NewInferenceService(catalog), k)
			summary, err := runner.Run(ctx, cases)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
				MinTop1Accuracy: minTop1,
				MinMRRAtK:       minMRR,
				MaxFailed:       maxFailed,
			})
			return guardrails.Check(summary)
		},
	}

	cmd.Flags().StringVar(&goldenPath, "golden", "config/golden_cases.json", "Path to the golden cases file")
	cmd.Flags().IntVar(&k, "k", evaluation.DefaultK, "Cut-off for Recall@K and MRR@K")
	cmd.Flags().Float64Var(&minTop1, "min-top1", 0.8, "Fail when top-1 accuracy is below this")
	cmd.Flags().Float64Var(&minMRR, "min-mrr", 0.85, "Fail when MRR@K is below this")
	cmd.Flags().IntVar(&maxFailed, "max-failed", 0, "Fail when more cases than this cannot be scored")
	return cmd
}
