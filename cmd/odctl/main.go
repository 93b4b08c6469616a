package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odmap/backend/internal/config"
	"github.com/odmap/backend/internal/domain"
	"github.com/odmap/backend/internal/service"
)

var (
	sourceKind string
	day        int
	hour       int
	modeName   string
	showRaw    bool
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "odctl",
	Short: "Origin-destination trip explorer",
	Long:  `Render the hourly origin/destination density and per-minute breakdown of the iTIC trip sample from the command line.`,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one day/hour/mode selection",
	Long:  `Fetch the selected day, keep the selected hour and print the centroid, per-minute histogram and row count.`,
	RunE:  runRender,
}

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List the selectable days",
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range domain.Days {
			fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  (%s)\n", d.Number, d.Label, d.File)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sourceKind, "source", "s", "", "Record source: http, postgres or mock (default from SOURCE)")

	renderCmd.Flags().IntVarP(&day, "day", "d", 1, "Day of January 2019 (1-5)")
	renderCmd.Flags().IntVarP(&hour, "hour", "H", 0, "Hour of day (0-23)")
	renderCmd.Flags().StringVarP(&modeName, "mode", "m", string(domain.ModeOrigin), "Origin, Destination or Origin-Destination")
	renderCmd.Flags().BoolVarP(&showRaw, "raw", "r", false, "Include the filtered points")
	renderCmd.Flags().BoolVar(&outputJSON, "json", false, "Output the result as JSON")

	rootCmd.AddCommand(renderCmd, daysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	mode, err := domain.ParseMode(modeName)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if sourceKind != "" {
		cfg.Source = sourceKind
	}

	source, closeSource := service.NewSource(context.Background(), cfg)
	defer closeSource()

	svc := service.NewRenderService(source, cfg.HexResolution)
	out, err := svc.Render(cmd.Context(), domain.Query{Day: day, Hour: hour, Mode: mode, ShowRaw: showRaw})
	if err != nil {
		return err
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printRender(cmd.OutOrStdout(), out)
	return nil
}

func printRender(w io.Writer, out domain.RenderOutput) {
	fmt.Fprintf(w, "Date: %s\n", out.DateLabel)
	fmt.Fprintf(w, "Time: %s\n", out.Window)
	fmt.Fprintf(w, "Data type: %s\n\n", out.Mode)

	if out.Centroid.Empty() {
		fmt.Fprintln(w, "Centroid: n/a")
	} else {
		fmt.Fprintf(w, "Centroid: (%.6f, %.6f)\n", out.Centroid.Lat, out.Centroid.Lon)
	}
	if b := out.View.Bounds; b != nil {
		fmt.Fprintf(w, "Bounds: lat[%.4f, %.4f] lon[%.4f, %.4f], span %.1f km\n", b.MinLat, b.MaxLat, b.MinLon, b.MaxLon, b.SpanKm)
	}
	fmt.Fprintf(w, "Hexagon cells: %d\n\n", len(out.HexBins))

	fmt.Fprintf(w, "Breakdown by minute from %s\n", out.Window)
	peak := 0
	for _, c := range out.Histogram {
		if c > peak {
			peak = c
		}
	}
	for m, c := range out.Histogram {
		bar := 0
		if peak > 0 {
			bar = c * 40 / peak
		}
		fmt.Fprintf(w, "%02d %6d %s\n", m, c, strings.Repeat("#", bar))
	}

	if len(out.Points) > 0 {
		fmt.Fprintf(w, "\nRaw data from %s\n", out.Window)
		for _, p := range out.Points {
			fmt.Fprintf(w, "%.6f  %.6f  %s\n", p.Lat, p.Lon, p.Time.Format("2006-01-02 15:04:05"))
		}
	}

	fmt.Fprintf(w, "\n%s\n", out.Summary)
}
