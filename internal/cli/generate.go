package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dosecron/dosecron/engine"
	"github.com/dosecron/dosecron/export"
	"github.com/dosecron/dosecron/holiday"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a recurring date schedule",
	Example: `  dosecron generate --start 2025-08-13 --interval 15 --duration 4 --unit months
  dosecron generate --config schedule.yaml --country CR --format ics -o schedule.ics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		formatFlag, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg := engine.DefaultConfig()
		title := "Dose schedule"
		if configPath != "" {
			fc, err := loadFileConfig(configPath)
			if err != nil {
				return err
			}
			fc.apply(&cfg)
			if fc.Title != "" {
				title = fc.Title
			}
		}

		// Flags win over file values.
		if cmd.Flags().Changed("start") {
			cfg.StartDate, _ = cmd.Flags().GetString("start")
		}
		if cmd.Flags().Changed("interval") {
			cfg.Interval, _ = cmd.Flags().GetInt("interval")
		}
		if cmd.Flags().Changed("interval-unit") {
			v, _ := cmd.Flags().GetString("interval-unit")
			cfg.IntervalUnit = engine.IntervalUnit(v)
		}
		if cmd.Flags().Changed("duration") {
			cfg.Duration, _ = cmd.Flags().GetInt("duration")
		}
		if cmd.Flags().Changed("unit") {
			v, _ := cmd.Flags().GetString("unit")
			cfg.DurationUnit = engine.DurationUnit(v)
		}
		if cmd.Flags().Changed("exclude-weekends") {
			cfg.ExcludeWeekends, _ = cmd.Flags().GetBool("exclude-weekends")
		}
		if cmd.Flags().Changed("exclude-holidays") {
			cfg.ExcludeHolidays, _ = cmd.Flags().GetBool("exclude-holidays")
		}
		if cmd.Flags().Changed("country") {
			cfg.CountryCode, _ = cmd.Flags().GetString("country")
		}
		if cmd.Flags().Changed("title") {
			title, _ = cmd.Flags().GetString("title")
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		cache := holiday.NewCache(holiday.DefaultCacheConfig)
		defer cache.Close()
		source := holiday.NewNagerClient(nil, logger)
		generator := engine.NewGenerator(cache, source, logger)

		entries, err := generator.Generate(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if formatFlag == "table" {
			return writeTable(out, entries)
		}

		format, err := export.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		rendered, err := export.Render(format, entries, export.Meta{
			Title:        title,
			CountryCode:  cfg.CountryCode,
			IntervalDays: cfg.IntervalDays(),
		})
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, rendered)
		return err
	},
}

func init() {
	f := generateCmd.Flags()
	f.String("start", "", "start date (yyyy-mm-dd)")
	f.Int("interval", 0, "spacing between dates")
	f.String("interval-unit", "days", "interval unit (days, weeks, months)")
	f.Int("duration", 0, "length of the generated period")
	f.String("unit", "months", "duration unit (days, weeks, months, years)")
	f.Bool("exclude-weekends", true, "move dates off Saturdays and Sundays")
	f.Bool("exclude-holidays", true, "move dates off public holidays")
	f.String("country", "", "ISO country code for the holiday calendar")
	f.String("format", "table", "output format (table, ics, csv, json, xml)")
	f.StringP("output", "o", "", "write output to a file instead of stdout")
	f.String("config", "", "YAML config file with schedule settings")
	f.String("title", "", "schedule title used in exports")
	f.Bool("verbose", false, "enable debug logging")
}

// writeTable prints the schedule as an aligned text table followed by a
// short summary line.
func writeTable(w io.Writer, entries []engine.DateEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No dates in the configured period.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tDAY\tNOTES")
	for _, e := range entries {
		notes := ""
		switch {
		case e.RelocationExhausted:
			notes = "no valid day found, kept as-is"
		case e.WasRelocated:
			notes = fmt.Sprintf("moved from %s", e.OriginalDate.Format("2006-01-02"))
		}
		if e.Holiday != nil {
			if notes != "" {
				notes += "; "
			}
			notes += e.Holiday.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.IntervalNumber, e.DateString, e.Date.Weekday(), notes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := engine.Summarize(entries)
	_, err := fmt.Fprintf(w, "\n%d dates from %s to %s (%d working days)\n",
		s.Total, s.FirstDate.Format("2006-01-02"), s.LastDate.Format("2006-01-02"), s.WorkingDays)
	return err
}
