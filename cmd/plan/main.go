package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/arnavshah/group-planner-go/pkg/export"
	"github.com/arnavshah/group-planner-go/pkg/models"
	"github.com/arnavshah/group-planner-go/pkg/planner"
	"github.com/arnavshah/group-planner-go/pkg/slots"
)

var (
	inputPath string
	xlsxPath  string
	offset    int
	limit     int
)

var rootCmd = &cobra.Command{
	Use:   "plan",
	Short: "Rank the session plans of one period from a JSON request",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "-", "request file, - for stdin")
	rootCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the window to this spreadsheet")
	rootCmd.Flags().IntVar(&offset, "offset", 0, "index of the first ranked plan to print")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of plans to print, 0 for all")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func readRequest(path string) (models.PlanRequest, error) {
	var req models.PlanRequest
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

func run(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(inputPath)
	if err != nil {
		return err
	}

	catalog, err := models.NewCatalog(req.Activities)
	if err != nil {
		return err
	}
	periodSlots, err := slots.Resolve(req.Slots, req.SlotRules)
	if err != nil {
		return err
	}
	p, err := planner.NewPlanner(catalog, periodSlots, req.Responses)
	if err != nil {
		return err
	}

	if offset < 0 {
		offset = 0
	}
	start := time.Now()
	ranked := p.Plans()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d plans over %d slots in %s\n", len(ranked), len(p.Slots), time.Since(start).Round(time.Millisecond))

	window := planner.Window(ranked, offset, limit)
	entries := make([]models.RankedPlan, len(window))
	for i, plan := range window {
		entries[i] = models.RankedPlan{
			Rank:    offset + i + 1,
			Score:   planner.ScorePlan(plan),
			Summary: planner.Summarize(plan, catalog),
			Plan:    plan,
		}
		printPlan(out, entries[i])
	}

	if xlsxPath == "" {
		return nil
	}
	f, err := os.Create(xlsxPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteXLSX(f, entries)
}

func printPlan(w io.Writer, rp models.RankedPlan) {
	spacing := "clustered"
	if rp.Score.WellSpaced {
		spacing = "well spaced"
	}
	fmt.Fprintf(w, "\n#%d  %d regular, %d if need be, %s\n",
		rp.Rank, rp.Score.RegularAttendees, rp.Score.IfNeedBeAttendees, spacing)
	for _, s := range rp.Sessions {
		names := make([]string, len(s.Attendees))
		for i, a := range s.Attendees {
			names[i] = a.UserID
			if a.IfNeedBe {
				names[i] += "*"
			}
		}
		fmt.Fprintf(w, "  %s  %-20s %s\n", models.FormatSlot(s.Slot), s.ActivityName, strings.Join(names, ", "))
	}
}
