package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/sugar-guidance/internal/bootstrap"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
	"github.com/vladimiradmaev/sugar-guidance/internal/services"
	"github.com/vladimiradmaev/sugar-guidance/internal/utils"
)

const disclaimer = "Disclaimer: This app provides general guidance only and does not replace professional medical advice. Always consult with a healthcare provider."

func newAddCmd(open appOpener) *cobra.Command {
	var contextFlag string

	cmd := &cobra.Command{
		Use:   "add <mg/dL>",
		Short: "Log a reading and show the guidance for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("blood sugar must be a whole number in mg/dL, got %q", args[0])
			}
			readingCtx, err := domain.ParseReadingContext(contextFlag)
			if err != nil {
				return err
			}

			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				assessment, err := app.Readings.Submit(ctx, value, readingCtx)
				if err != nil {
					if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
						return errors.New(apperrors.UserMessage(err))
					}
					return err
				}

				var insight string
				if !assessment.IsEmergency() {
					if insight, err = app.Insights.Insight(ctx, readingCtx); err != nil {
						return err
					}
				}
				printAssessment(out, assessment, insight)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&contextFlag, "context", "c", string(domain.ContextRandom), "reading type, one of the keys listed by the contexts command")
	return cmd
}

func newHistoryCmd(open appOpener) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent readings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				rows, err := app.History.Recent(ctx, limit)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					fmt.Fprintln(out, services.InsightNoHistory)
					return nil
				}

				fmt.Fprintf(out, "%-19s  %-23s  %5s  %s\n", "Date/Time", "Reading Type", "mg/dL", "Status")
				for _, row := range rows {
					fmt.Fprintf(out, "%-19s  %-23s  %5d  %s\n",
						utils.FormatTimestamp(row.Reading.Timestamp),
						row.Reading.Context.Label(),
						row.Reading.Value,
						row.Severity.Label)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", services.RecentHistoryRows, "number of readings to show")
	return cmd
}

func newTrendCmd(open appOpener) *cobra.Command {
	var contextFlag string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the last 7 readings as a bar chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *domain.ReadingContext
			if contextFlag != "" {
				readingCtx, err := domain.ParseReadingContext(contextFlag)
				if err != nil {
					return err
				}
				filter = &readingCtx
			}

			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				trend, err := app.Trends.Trend(ctx, filter)
				if err != nil {
					return err
				}
				if trend.Insufficient {
					fmt.Fprintln(out, services.MsgInsufficientTrend)
					return nil
				}

				for _, p := range trend.Points {
					fmt.Fprintf(out, "%s  %-40s %3d  %s\n",
						utils.FormatTimestamp(p.Reading.Timestamp),
						strings.Repeat("#", chartBar(p.Reading.Value)),
						p.Reading.Value,
						p.Severity.Color)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&contextFlag, "context", "c", "", "only show readings of this type")
	return cmd
}

func newInsightCmd(open appOpener) *cobra.Command {
	var contextFlag string

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Compare the last two readings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			readingCtx, err := domain.ParseReadingContext(contextFlag)
			if err != nil {
				return err
			}

			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				insight, err := app.Insights.Insight(ctx, readingCtx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, insight)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&contextFlag, "context", "c", string(domain.ContextRandom), "reading type to compare")
	return cmd
}

func newSummaryCmd(open appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize recent readings with Gemini",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				if app.Summary == nil {
					return fmt.Errorf("summaries need GEMINI_API_KEY to be set")
				}

				rows, err := app.History.Recent(ctx, services.SummaryReadings)
				if err != nil {
					return err
				}
				readings := make([]domain.Reading, 0, len(rows))
				for _, row := range rows {
					readings = append(readings, row.Reading)
				}

				summary, err := app.Summary.Summarize(ctx, readings)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n\n%s\n", summary, disclaimer)
				return nil
			})
		},
	}
}

func newContextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contexts",
		Short: "List the reading types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range domain.AllContexts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", c, c.Label())
			}
		},
	}
}

// chartBar is one # per 15 mg/dL, at least one and at most 40
func chartBar(value int) int {
	return min(max(value/15, 1), 40)
}

func printAssessment(out io.Writer, a *domain.Assessment, insight string) {
	if a.IsEmergency() {
		fmt.Fprintf(out, "EMERGENCY: %d mg/dL (%s)\n", a.Reading.Value, a.Reading.Context.Label())
		if a.Result != nil {
			fmt.Fprintf(out, "Status: %s\n", a.Result.Status.Display())
		}
		fmt.Fprintln(out, a.Advisory)
		fmt.Fprintf(out, "\n%s\n", disclaimer)
		return
	}

	r := a.Result
	fmt.Fprintf(out, "Status:       %s %s\n", r.Indicator, r.Status.Display())
	fmt.Fprintf(out, "Blood Sugar:  %d mg/dL\n", a.Reading.Value)
	fmt.Fprintf(out, "Reading Type: %s\n\n", a.Reading.Context.Label())
	fmt.Fprintf(out, "What This Means\n  %s\n\n", r.Meaning)
	fmt.Fprintln(out, "Diet Recommendations")
	for _, item := range r.DietDo {
		fmt.Fprintf(out, "  + %s\n", item)
	}
	for _, item := range r.DietAvoid {
		fmt.Fprintf(out, "  - %s\n", item)
	}
	fmt.Fprintf(out, "\nPhysical Activity\n  %s\n\n", r.Activity)
	fmt.Fprintf(out, "Today's Focus\n  %s\n\n", r.Focus)
	if insight != "" {
		fmt.Fprintf(out, "Trend Insight\n  %s\n\n", insight)
	}
	fmt.Fprintln(out, disclaimer)
}
