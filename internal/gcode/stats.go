// Package gcode extracts summary statistics from the comment header the
// slicer writes into its toolpath files.
package gcode

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Stats holds the slicer's own estimates for one toolpath file. Fields are
// zero-valued when the corresponding comment is absent.
type Stats struct {
	// EstimatedPrintingTime is the slicer's normal-mode estimate, verbatim
	// (e.g. "1h 32m 10s").
	EstimatedPrintingTime string

	// TotalFilamentCost is the slicer's cost estimate.
	TotalFilamentCost float64

	// TotalFilamentUsedGrams is the estimated material mass.
	TotalFilamentUsedGrams float64
}

var (
	timePattern         = regexp.MustCompile(`;\s*estimated printing time \(normal mode\)\s*=\s*(.*)`)
	costPattern         = regexp.MustCompile(`;\s*total filament cost\s*=\s*(\d+\.?\d*)`)
	filamentUsedPattern = regexp.MustCompile(`;\s*total filament used \[g\]\s*=\s*(\d+\.?\d*)`)
)

// ParseStats scans the toolpath file at path for the slicer's estimate
// comments. Lines that do not match are ignored; a file with no matching
// comments yields a zero Stats and no error.
func ParseStats(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	var stats Stats

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if m := timePattern.FindStringSubmatch(line); m != nil {
			stats.EstimatedPrintingTime = strings.TrimSpace(m[1])
		}
		if m := costPattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				stats.TotalFilamentCost = v
			}
		}
		if m := filamentUsedPattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				stats.TotalFilamentUsedGrams = v
			}
		}
	}

	return stats, scanner.Err()
}
