// eightball-edit changes outcome text, weights, colors, and timings without
// touching code. It edits config.yaml in place (atomic rename), re-running
// the same validation the daemon uses and reporting every violation, so a
// running daemon only ever picks up a complete, valid snapshot.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/eightball/internal/config"
	"github.com/danielpatrickdp/eightball/internal/trials"
)

// #region main

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	list := flag.Bool("list", false, "print the outcome table")
	add := flag.String("add", "", `add an outcome as "text:weight[:color]"`)
	remove := flag.Int("remove", -1, "remove the outcome at index (see --list)")
	setWeight := flag.String("set-weight", "", `change a weight as "index=weight"`)
	thinking := flag.Float64("thinking", 0, "set thinking duration in seconds")
	reveal := flag.Float64("reveal", 0, "set reveal duration in seconds")
	device := flag.String("device", "", "set the device name written to interaction records")
	validateOnly := flag.Bool("validate", false, "validate the file and exit")
	stats := flag.Bool("stats", false, "print per-outcome counts from the trial store")
	flag.Parse()

	snap, err := readConfig(*configPath)
	if err != nil {
		fail(err)
	}

	if *validateOnly {
		if err := config.Validate(snap); err != nil {
			printViolations(err)
			os.Exit(1)
		}
		fmt.Println("configuration ok")
		return
	}

	if *stats {
		if err := printStats(snap); err != nil {
			fail(err)
		}
		return
	}

	changed := false

	if *add != "" {
		o, err := parseOutcome(*add)
		if err != nil {
			fail(err)
		}
		snap.Outcomes = append(snap.Outcomes, o)
		changed = true
	}

	if *remove >= 0 {
		if *remove >= len(snap.Outcomes) {
			fail(fmt.Errorf("no outcome at index %d", *remove))
		}
		snap.Outcomes = append(snap.Outcomes[:*remove], snap.Outcomes[*remove+1:]...)
		changed = true
	}

	if *setWeight != "" {
		idx, w, err := parseSetWeight(*setWeight)
		if err != nil {
			fail(err)
		}
		if idx < 0 || idx >= len(snap.Outcomes) {
			fail(fmt.Errorf("no outcome at index %d", idx))
		}
		snap.Outcomes[idx].Weight = w
		changed = true
	}

	if *thinking > 0 {
		snap.Behavior.ThinkingSeconds = *thinking
		changed = true
	}
	if *reveal > 0 {
		snap.Behavior.RevealSeconds = *reveal
		changed = true
	}
	if *device != "" {
		snap.DeviceName = *device
		changed = true
	}

	if changed {
		// The full violation list comes back at once, so a user fixing a
		// hand-edited file sees everything wrong in one pass.
		if err := config.Validate(snap); err != nil {
			printViolations(err)
			fmt.Fprintln(os.Stderr, "no changes written")
			os.Exit(1)
		}
		if err := writeConfig(*configPath, snap); err != nil {
			fail(err)
		}
		fmt.Println("configuration updated")
	}

	if *list || changed {
		printOutcomes(snap)
	}
}

// #endregion main

// #region file-io

func readConfig(path string) (config.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Snapshot{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var s config.Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return config.Snapshot{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// writeConfig writes to a temp file and renames, so the daemon's watcher
// never sees a half-written file.
func writeConfig(path string, s config.Snapshot) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(path), ".eightball-edit.tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// #endregion file-io

// #region parsing

// parseOutcome parses "text:weight" or "text:weight:color".
func parseOutcome(s string) (config.OutcomeConfig, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return config.OutcomeConfig{}, fmt.Errorf("expected %q, got %q", "text:weight[:color]", s)
	}
	w, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return config.OutcomeConfig{}, fmt.Errorf("weight %q is not a number", parts[1])
	}
	o := config.OutcomeConfig{Text: strings.TrimSpace(parts[0]), Weight: w}
	if len(parts) == 3 {
		o.Color = strings.TrimSpace(parts[2])
	}
	return o, nil
}

func parseSetWeight(s string) (int, float64, error) {
	idxStr, wStr, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("expected %q, got %q", "index=weight", s)
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return 0, 0, fmt.Errorf("index %q is not a number", idxStr)
	}
	w, err := strconv.ParseFloat(wStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("weight %q is not a number", wStr)
	}
	return idx, w, nil
}

// #endregion parsing

// #region output

func printOutcomes(s config.Snapshot) {
	var total float64
	for _, o := range s.Outcomes {
		total += o.Weight
	}
	fmt.Printf("%-4s %-40s %8s %8s %s\n", "#", "text", "weight", "share", "color")
	for i, o := range s.Outcomes {
		share := "-"
		if total > 0 && o.Weight > 0 {
			share = fmt.Sprintf("%.1f%%", 100*o.Weight/total)
		}
		fmt.Printf("%-4d %-40s %8.2f %8s %s\n", i, o.Text, o.Weight, share, o.Color)
	}
	fmt.Printf("timings: thinking %.1fs, reveal %.1fs\n",
		s.Behavior.ThinkingSeconds, s.Behavior.RevealSeconds)
}

func printStats(s config.Snapshot) error {
	dbPath := s.Paths.TrialsDB
	if dbPath == "" {
		dbPath = "trials.db"
	}
	store, err := trials.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.CountByOutcome()
	if err != nil {
		return err
	}
	total, err := store.ShownCount()
	if err != nil {
		return err
	}

	fmt.Printf("%d trials recorded\n", total)
	for outcome, n := range counts {
		fmt.Printf("%6d  %s\n", n, outcome)
	}
	return nil
}

func printViolations(err error) {
	var verr *config.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, "configuration invalid:")
		for _, v := range verr.Violations {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", v.Field, v.Reason)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// #endregion output
