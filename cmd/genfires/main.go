// Command genfires generates the five historical dataset files with synthetic
// fire records for local development and test fixtures. The output exercises
// every normalization path the loader supports: year/month/day fields versus
// date strings, short cause codes, severity variants, entries without
// coordinates, and bare NaN tokens.
//
// Usage:
//
//	go run ./cmd/genfires -out data -count 200 -seed 42
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/couchcryptid/wildfire-risk-service/internal/store"
)

// nanSentinel marks numbers to be rewritten as bare NaN tokens, mimicking the
// registry exports the loader has to tolerate.
const nanSentinel = -999999.0

var (
	causes     = []string{"LTG", "MAN", "PERSON", "H", "LIGHTNING", "SPONT", "Campfire", ""}
	severities = []string{"low", "very low", "medium", "high", "very high", "extreme", "Very High Severity", ""}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data", "output directory for dataset files")
	count := flag.Int("count", 200, "records per dataset file")
	seed := flag.Int64("seed", 1, "random seed for reproducible output")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	for _, name := range store.Sources() {
		entries := make([]map[string]any, 0, *count)
		for i := 0; i < *count; i++ {
			entries = append(entries, randomEntry(rng, i))
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		data = bytes.ReplaceAll(data, []byte("-999999"), []byte("NaN"))

		path := filepath.Join(*out, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		log.Printf("%s: %d records", name, *count)
	}

	return nil
}

func randomEntry(rng *rand.Rand, i int) map[string]any {
	entry := map[string]any{
		"fire_id":       fmt.Sprintf("FIRE-%06d", rng.Intn(1000000)),
		"cause":         causes[rng.Intn(len(causes))],
		"severity":      severities[rng.Intn(len(severities))],
		"area_burned":   rng.Float64() * 1200,
		"incident_name": fmt.Sprintf("Incident %d", i),
	}

	// Alternate between the two admissible date shapes; leave a few undated.
	switch i % 3 {
	case 0:
		entry["year"] = 2015 + rng.Intn(11)
		entry["month"] = rng.Intn(14) // occasionally out of range on purpose
		entry["day"] = 1 + rng.Intn(31)
	case 1:
		entry["date"] = fmt.Sprintf("%04d-%02d-%02d", 2015+rng.Intn(11), 1+rng.Intn(12), 1+rng.Intn(28))
	}

	// Most entries get coordinates in the Pacific Northwest; a few lose them
	// so the loader's drop path stays exercised, and a few get NaN area.
	if i%17 != 0 {
		entry["latitude"] = 43 + rng.Float64()*18
		entry["longitude"] = -130 + rng.Float64()*15
	}
	if i%13 == 0 {
		entry["area_burned"] = nanSentinel
	}

	return entry
}
