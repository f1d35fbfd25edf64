// eightball-replay re-draws a recorded fixture through the selector and
// verifies the seed reproduces its pinned outcome sequence. Exits non-zero
// on any mismatch, so fixtures work as regression checks in CI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/eightball/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to a JSON replay fixture")
	jsonOut := flag.Bool("json", false, "output results as JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: eightball-replay --fixture path/to/fixture.json [--json]")
		os.Exit(2)
	}

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results, err := replay.Run(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	summary := replay.Summarize(results)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		out := struct {
			Description string          `json:"description,omitempty"`
			Results     []replay.Result `json:"results"`
			Summary     replay.Summary  `json:"summary"`
		}{f.Description, results, summary}
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if f.Description != "" {
			fmt.Println(f.Description)
		}
		for _, r := range results {
			mark := "ok"
			if !r.Match {
				mark = "MISMATCH"
			}
			fmt.Printf("%4d  %-10s expected %-30q got %q\n", r.Index, mark, r.Expected, r.Got)
		}
		fmt.Printf("%d draws, %d matches, %d mismatches\n",
			summary.Total, summary.Matches, summary.Mismatches)
	}

	if summary.Mismatches > 0 {
		os.Exit(1)
	}
}

// #endregion main
