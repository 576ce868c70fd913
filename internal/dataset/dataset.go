// Package dataset generates the synthetic patient CSV used by the store
// script. The panel never reads it back.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
)

const (
	DefaultRows = 500
	DefaultFile = "patient_data.csv"

	minHeartRate   = 60
	maxHeartRate   = 100 // exclusive
	minTemperature = 36.0
	maxTemperature = 102.0
)

// Header is the CSV header row.
var Header = []string{"Patient_ID", "Heart_Rate", "Temperature"}

// Record is one patient row.
type Record struct {
	PatientID   int
	HeartRate   int
	Temperature float64
}

func (r Record) strings() []string {
	return []string{
		strconv.Itoa(r.PatientID),
		strconv.Itoa(r.HeartRate),
		strconv.FormatFloat(r.Temperature, 'f', -1, 64),
	}
}

// Generate returns n records with IDs 1..n. Equal seeds give equal records.
func Generate(n int, seed int64) []Record {
	rng := rand.New(rand.NewSource(seed))
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			PatientID:   i + 1,
			HeartRate:   minHeartRate + rng.Intn(maxHeartRate-minHeartRate),
			Temperature: minTemperature + rng.Float64()*(maxTemperature-minTemperature),
		}
	}
	return records
}

// Write encodes records as CSV with a header row.
func Write(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile generates n records and writes them to path.
func WriteFile(path string, n int, seed int64) error {
	if n < 0 {
		return fmt.Errorf("row count must not be negative, got %d", n)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, Generate(n, seed)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
