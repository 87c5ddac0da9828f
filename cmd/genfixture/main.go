// Command genfixture fetches a date range from the USGS catalog and writes it
// as the bundled fallback document served when a session has no query.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  -start 2023-11-28 -end 2023-12-05 \
//	  -out internal/adapter/usgs/fallback.json
package main

import (
	"cmp"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jbacule/ph-earthquakes/internal/adapter/usgs"
	"github.com/jbacule/ph-earthquakes/internal/config"
	"github.com/jbacule/ph-earthquakes/internal/domain"
	"github.com/jbacule/ph-earthquakes/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	start := flag.String("start", "", "start date (YYYY-MM-DD); defaults to -days before today")
	end := flag.String("end", "", "end date (YYYY-MM-DD); defaults to today")
	days := flag.Int("days", 7, "range length when -start/-end are not given")
	minMag := flag.Float64("min-magnitude", -1, "minimum magnitude; negative leaves it unset")
	order := flag.String("order", string(domain.OrderMagnitudeDesc), "catalog ordering")
	out := flag.String("out", "", "output path for the fixture")
	baseURL := flag.String("base-url", config.DefaultUSGSBaseURL, "catalog endpoint")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	q := domain.QuerySpec{StartTime: *start, EndTime: *end, OrderBy: domain.OrderBy(*order)}
	if !q.OrderBy.Valid() {
		return fmt.Errorf("invalid -order %q", *order)
	}
	if q.StartTime == "" || q.EndTime == "" {
		s, e := domain.DateRange(*days)
		q.StartTime = cmp.Or(q.StartTime, s)
		q.EndTime = cmp.Or(q.EndTime, e)
	}
	if *minMag >= 0 {
		q.MinMagnitude = minMag
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := usgs.NewClient(*baseURL, *timeout, logger)

	coll, err := client.Fetch(context.Background(), q)
	if err != nil {
		return fmt.Errorf("fetch %s..%s: %w", q.StartTime, q.EndTime, err)
	}
	log.Printf("fetched %d earthquakes (%s to %s)", len(coll.Features), q.StartTime, q.EndTime)

	if err := writeJSON(*out, coll); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	printStats(coll.Features)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	colorCounts map[string]int
	alertCounts map[domain.AlertLevel]int
	tsunami     int
}

func collectStats(features []domain.Feature) statsResult {
	s := statsResult{
		colorCounts: map[string]int{},
		alertCounts: map[domain.AlertLevel]int{},
	}
	for i := range features {
		p := &features[i].Properties
		s.colorCounts[domain.MagnitudeColor(p.Mag)]++
		s.alertCounts[p.Alert]++
		if p.Tsunami == 1 {
			s.tsunami++
		}
	}
	return s
}

func printStats(features []domain.Feature) {
	stats := collectStats(features)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(features))
	fmt.Printf("By magnitude band: >=7=%d, 6-7=%d, 5-6=%d, 4-5=%d, <4=%d\n",
		stats.colorCounts[domain.ColorRed], stats.colorCounts[domain.ColorOrange],
		stats.colorCounts[domain.ColorYellow], stats.colorCounts[domain.ColorBlue],
		stats.colorCounts[domain.ColorGray])
	fmt.Printf("By alert: red=%d, orange=%d, yellow=%d, green=%d, none=%d\n",
		stats.alertCounts[domain.AlertRed], stats.alertCounts[domain.AlertOrange],
		stats.alertCounts[domain.AlertYellow], stats.alertCounts[domain.AlertGreen],
		stats.alertCounts[domain.AlertNone])
	fmt.Printf("Tsunami flagged: %d\n", stats.tsunami)

	if largest := pipeline.Largest(features); largest != nil {
		fmt.Printf("Largest: %s M%.1f %s\n", largest.ID, largest.Properties.Mag, largest.Properties.Place)
	}
}
