// Command validate performs integrity checks on a fallback earthquake fixture:
// document structure, event identity, coordinates inside the Philippines
// bounding box, property value domains, and the display derivation the
// dashboard runs over it.
//
// Usage:
//
//	go run ./cmd/validate -fixture internal/adapter/usgs/fallback.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jbacule/ph-earthquakes/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	fixture := flag.String("fixture", "internal/adapter/usgs/fallback.json", "path to the GeoJSON fixture")
	flag.Parse()

	os.Exit(run(*fixture))
}

func run(path string) int {
	fmt.Println("=== Earthquake Fixture Validation ===")
	fmt.Println()

	coll, err := loadCollection(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	phases := validateAll(coll)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d features, metadata count %d\n", len(coll.Features), coll.Metadata.Count)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadCollection(path string) (domain.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Collection{}, err
	}
	var coll domain.Collection
	if err := json.Unmarshal(data, &coll); err != nil {
		return domain.Collection{}, err
	}
	return coll, nil
}
