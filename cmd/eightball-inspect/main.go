// eightball-inspect reads the trial store and prints recent trials or
// per-outcome counts, for checking what the device has been telling people.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/danielpatrickdp/eightball/internal/trials"
)

// #region main

func main() {
	dbPath := flag.String("db", "trials.db", "path to trials.db")
	last := flag.Int("last", 20, "show N most recent trials")
	counts := flag.Bool("counts", false, "show per-outcome counts instead of recent trials")
	jsonOut := flag.Bool("json", false, "output as JSON instead of a table")
	flag.Parse()

	store, err := trials.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *counts {
		err = runCountsMode(store, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	TrialID   string `json:"trial_id"`
	Outcome   string `json:"outcome"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	Actor     string `json:"actor,omitempty"`
	CreatedAt string `json:"created_at"`
}

func runListMode(store *trials.Store, last int, jsonOut bool) error {
	recent, err := store.Recent(last)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Fprintln(os.Stderr, "no trials recorded")
		return nil
	}

	rows := make([]listRow, len(recent))
	for i, t := range recent {
		rows[i] = listRow{
			TrialID:   t.TrialID,
			Outcome:   t.Outcome,
			Status:    string(t.Status),
			Reason:    t.Reason,
			Actor:     t.Actor,
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-22s %-8s %-40s %s\n", "created_at", "status", "outcome", "actor")
	for _, r := range rows {
		fmt.Printf("%-22s %-8s %-40s %s\n", r.CreatedAt, r.Status, r.Outcome, r.Actor)
	}
	return nil
}

// #endregion list-mode

// #region counts-mode

type countRow struct {
	Outcome string  `json:"outcome"`
	Count   int64   `json:"count"`
	Share   float64 `json:"share"`
}

func runCountsMode(store *trials.Store, jsonOut bool) error {
	counts, err := store.CountByOutcome()
	if err != nil {
		return err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	rows := make([]countRow, 0, len(counts))
	for outcome, n := range counts {
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total)
		}
		rows = append(rows, countRow{Outcome: outcome, Count: n, Share: share})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%8s %8s  %s\n", "count", "share", "outcome")
	for _, r := range rows {
		fmt.Printf("%8d %7.1f%%  %s\n", r.Count, 100*r.Share, r.Outcome)
	}
	fmt.Printf("%8d total\n", total)
	return nil
}

// #endregion counts-mode
