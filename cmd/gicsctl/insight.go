package main

import (
	"github.com/spf13/cobra"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/client"
)

// newInsightCmd groups the analytics-engine queries under one subcommand.
func newInsightCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Query the daemon's analytics engine",
	}

	cmd.AddCommand(
		newInsightGetCmd(flags),
		newInsightListCmd(flags),
		newInsightOutcomeCmd(flags),
		newInsightCorrelationsCmd(flags),
		newInsightClustersCmd(flags),
		newInsightIndicatorsCmd(flags),
		newInsightSeasonalCmd(flags),
		newInsightForecastCmd(flags),
		newInsightAnomaliesCmd(flags),
		newInsightRecommendationsCmd(flags),
		newInsightAccuracyCmd(flags),
	)
	return cmd
}

func newInsightGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Insight for one key",
		Args:  cobra.ExactArgs(1),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetInsight(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
}

func newInsightListCmd(flags *rootFlags) *cobra.Command {
	var insightType string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List insights",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetInsights(cmd.Context(), insightType)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().StringVar(&insightType, "type", "", "filter by insight type")
	return cmd
}

func newInsightOutcomeCmd(flags *rootFlags) *cobra.Command {
	var outcomeContext string
	cmd := &cobra.Command{
		Use:   "outcome <insight-id> <result>",
		Short: "Report an observed outcome",
		Args:  cobra.ExactArgs(2),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			ok, err := c.ReportOutcome(cmd.Context(), args[0], args[1], outcomeContext)
			if err != nil {
				return err
			}
			return printJSON(map[string]bool{"ok": ok})
		}),
	}
	cmd.Flags().StringVar(&outcomeContext, "context", "", "free-form outcome context")
	return cmd
}

func newInsightCorrelationsCmd(flags *rootFlags) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "correlations",
		Short: "Correlation analysis",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetCorrelations(cmd.Context(), key)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().StringVar(&key, "key", "", "scope to one record key")
	return cmd
}

func newInsightClustersCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Record clustering",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetClusters(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
}

func newInsightIndicatorsCmd(flags *rootFlags) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "Leading-indicator analysis",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetLeadingIndicators(cmd.Context(), key)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().StringVar(&key, "key", "", "scope to one record key")
	return cmd
}

func newInsightSeasonalCmd(flags *rootFlags) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "seasonal",
		Short: "Seasonality analysis",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetSeasonalPatterns(cmd.Context(), key)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().StringVar(&key, "key", "", "scope to one record key")
	return cmd
}

func newInsightForecastCmd(flags *rootFlags) *cobra.Command {
	var horizon int
	cmd := &cobra.Command{
		Use:   "forecast <key> <field>",
		Short: "Forecast one field of one record",
		Args:  cobra.ExactArgs(2),
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetForecast(cmd.Context(), args[0], args[1], horizon)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().IntVar(&horizon, "horizon", 0, "forecast horizon (0 = daemon default)")
	return cmd
}

func newInsightAnomaliesCmd(flags *rootFlags) *cobra.Command {
	var since int64
	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Detected anomalies",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetAnomalies(cmd.Context(), since)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().Int64Var(&since, "since", 0, "lower time bound, ms since epoch (0 = unbounded)")
	return cmd
}

func newInsightRecommendationsCmd(flags *rootFlags) *cobra.Command {
	var recommendationType, target string
	cmd := &cobra.Command{
		Use:   "recommendations",
		Short: "Recommendations",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetRecommendations(cmd.Context(), recommendationType, target)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().StringVar(&recommendationType, "type", "", "filter by recommendation type")
	cmd.Flags().StringVar(&target, "target", "", "filter by target")
	return cmd
}

func newInsightAccuracyCmd(flags *rootFlags) *cobra.Command {
	var insightType, scope string
	cmd := &cobra.Command{
		Use:   "accuracy",
		Short: "Insight accuracy report",
		Args:  cobra.NoArgs,
		RunE: run(flags, func(cmd *cobra.Command, c *client.Client, args []string) error {
			report, err := c.GetAccuracy(cmd.Context(), insightType, scope)
			if err != nil {
				return err
			}
			return printRaw(report)
		}),
	}
	cmd.Flags().StringVar(&insightType, "type", "", "filter by insight type")
	cmd.Flags().StringVar(&scope, "scope", "", "accuracy scope")
	return cmd
}
