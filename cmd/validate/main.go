// Command validate performs integrity checks over a historical dataset
// directory: per-source decode, coordinate ranges, date formats, and the
// normalized cause and severity vocabularies. It uses the real store loader
// so its verdicts match production behavior.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/store"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "data", "directory containing the historical dataset files")
	flag.Parse()

	phases := []*phase{}
	total := 0

	for _, name := range store.Sources() {
		p := &phase{name: name}
		phases = append(phases, p)

		records, dropped, err := store.LoadSource(filepath.Join(*dataDir, name))
		if err != nil {
			p.errorf("load failed: %v", err)
			continue
		}

		checkRecords(p, records)
		total += len(records)
		fmt.Printf("%s: %d records, %d dropped (no coordinates)\n", name, len(records), dropped)
	}

	fmt.Printf("total: %d records\n\n", total)

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d sources failed validation\n", failed, len(phases))
		os.Exit(1)
	}
	fmt.Println("\nall sources valid")
}

var validCauses = map[string]bool{
	domain.CauseHuman:       true,
	domain.CauseLightning:   true,
	domain.CauseSpontaneous: true,
	domain.CauseUnknown:     true,
}

func checkRecords(p *phase, records []domain.FireRecord) {
	for i, rec := range records {
		lat, lng := rec.Location.Latitude, rec.Location.Longitude
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			p.errorf("record %d (%s): coordinates out of range (%.4f, %.4f)", i, rec.FireID, lat, lng)
		}
		if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
			p.errorf("record %d (%s): date %q not ISO formatted", i, rec.FireID, rec.Date)
		}
		if rec.AreaBurned < 0 {
			p.errorf("record %d (%s): negative area burned %.2f", i, rec.FireID, rec.AreaBurned)
		}
		// Pass-through causes are upper-cased; anything mixed-case slipped
		// past normalization.
		if !validCauses[rec.Cause] && rec.Cause != strings.ToUpper(rec.Cause) {
			p.errorf("record %d (%s): unnormalized cause %q", i, rec.FireID, rec.Cause)
		}
	}
}
