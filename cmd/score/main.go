// Command score ranks the built-in crops against a weather snapshot read from
// a JSON file and prints the hazard alerts for it. No network access is
// needed.
//
// Usage:
//
//	go run ./cmd/score -snapshot testdata/kano.json -month 7 -top 5
//	echo '{"temperature":{"air":30},"humidity":80,...}' | go run ./cmd/score -snapshot -
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/crop-advisory-service/internal/advisory"
	"github.com/couchcryptid/crop-advisory-service/internal/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, clockwork.NewRealClock()))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, clock clockwork.Clock) int {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(stderr)
	snapshotPath := fs.String("snapshot", "", `path to a weather snapshot JSON file, or "-" for stdin`)
	month := fs.Int("month", 0, "planting month 1-12 (default: current month)")
	top := fs.Int("top", 5, "number of crops to show, 0 for all")
	crop := fs.String("crop", "", "score only this crop")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *snapshotPath == "" {
		fs.Usage()
		return 2
	}

	snap, err := readSnapshot(*snapshotPath, stdin, clock.Now().UTC())
	if err != nil {
		fmt.Fprintf(stderr, "read snapshot: %v\n", err)
		return exitCode(err)
	}

	m := clock.Now().UTC().Month()
	if *month != 0 {
		m = time.Month(*month)
	}

	catalog := domain.DefaultCatalog()
	var results []domain.ScoreResult
	if *crop != "" {
		r, err := domain.ScoreCropByName(catalog, *crop, snap, m)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitCode(err)
		}
		results = []domain.ScoreResult{r}
	} else {
		all, err := domain.ScoreAllCrops(catalog, snap, m)
		if all == nil && err != nil {
			fmt.Fprintln(stderr, err)
			return exitCode(err)
		}
		if err != nil {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		}
		results = domain.RankScores(all, *top)
	}

	fmt.Fprintf(stdout, "Month: %s\n\n", m)
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCROP\tSCORE\tREASONS")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%s\n", i+1, r.Crop, r.Score, strings.Join(r.Reasons, "; "))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "\nAlerts:")
	for _, a := range domain.GenerateAlerts(snap) {
		fmt.Fprintf(stdout, "  - %s\n", a)
	}
	return 0
}

// readSnapshot applies the same checks as the HTTP scoring endpoints.
func readSnapshot(path string, stdin io.Reader, now time.Time) (domain.WeatherSnapshot, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return domain.WeatherSnapshot{}, err
		}
		defer f.Close()
		r = f
	}

	return advisory.DecodeSnapshot(r, now)
}

// exitCode is 2 for caller mistakes and 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) {
		return 2
	}
	return 1
}
