// Package main provides a performance benchmarking tool for the Flowlens CLI.
// It generates synthetic flow-record datasets of increasing size, measures
// execution times across command types, running each test multiple times and
// averaging the runs, generating CSV output for performance analysis.
//
// Prerequisites:
// - flowlens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the generated datasets are written
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the averaged timing of one command on one dataset.
type BenchmarkResult struct {
	Dataset string
	Command string
	AvgTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	Runs         int
	DatasetSizes map[string]int
}

// flowRecord mirrors the JSON wire shape the CLI ingests.
type flowRecord struct {
	IssueKey     string             `json:"issue_key"`
	ART          string             `json:"art"`
	Team         string             `json:"team"`
	PI           string             `json:"pi"`
	Status       string             `json:"status"`
	Stages       map[string]float64 `json:"stages"`
	ResolvedDate string             `json:"resolved_date,omitempty"`
}

var stageNames = []string{"backlog", "analysis", "in_progress", "in_review", "in_sit", "in_uat", "deployment"}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    5,
		DatasetSizes: map[string]int{
			"small":  1_000,
			"medium": 25_000,
			"large":  250_000,
		},
	}

	if _, err := exec.LookPath("flowlens"); err != nil {
		fmt.Printf("Prerequisites check failed: flowlens binary not found in PATH\n")
		os.Exit(1)
	}

	datasets, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, datasets)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// generateDatasets writes one synthetic record file per configured size.
func generateDatasets(config BenchmarkConfig) (map[string]string, error) {
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(42)) // Fixed seed keeps runs comparable
	paths := make(map[string]string, len(config.DatasetSizes))

	for name, size := range config.DatasetSizes {
		fmt.Printf("Generating %s dataset (%d records)\n", name, size)
		records := make([]flowRecord, size)
		for i := range records {
			stages := make(map[string]float64)
			for _, stage := range stageNames {
				if rng.Float64() < 0.6 {
					stages[stage] = rng.Float64() * 90
				}
			}
			rec := flowRecord{
				IssueKey: fmt.Sprintf("BENCH-%d", i+1),
				ART:      fmt.Sprintf("ART-%d", i%8),
				Team:     fmt.Sprintf("team-%d", i%40),
				PI:       fmt.Sprintf("26Q%d", i%4+1),
				Status:   "In Progress",
				Stages:   stages,
			}
			if rng.Float64() < 0.5 {
				rec.Status = "Done"
				rec.ResolvedDate = time.Now().Add(-time.Duration(rng.Intn(120)) * 24 * time.Hour).Format("2006-01-02")
			}
			records[i] = rec
		}

		data, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(config.WorkDir, fmt.Sprintf("records_%s.json", name))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		paths[name] = path
	}
	return paths, nil
}

// runBenchmarks executes all benchmark tests across the generated datasets.
func runBenchmarks(config BenchmarkConfig, datasets map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs each\n",
		len(datasets), config.Timeout, config.Runs)

	commands := [][]string{
		{"analyze"},
		{"bottlenecks", "--threshold-days", "20"},
		{"stuck", "--limit", "100"},
	}

	for _, name := range []string{"small", "medium", "large"} {
		path, ok := datasets[name]
		if !ok {
			continue
		}
		fmt.Printf("Benchmarking %s dataset\n", name)
		for _, command := range commands {
			results = append(results, runBenchmarkSuite(config, name, path, command))
		}
	}
	return results
}

// runBenchmarkSuite times one command against one dataset.
func runBenchmarkSuite(config BenchmarkConfig, dataset, path string, command []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command[0], dataset)

	args := append([]string{command[0], path, "--store-backend", "none", "--output", "json"}, command[1:]...)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()
		cmd := exec.Command("flowlens", args...)

		done := make(chan bool)
		var cmdErr error
		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	avgTime := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}
	fmt.Printf("  Average: %s\n", avgTime)

	return BenchmarkResult{Dataset: dataset, Command: command[0], AvgTime: avgTime}
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/flowlens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "avg_time"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.AvgTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"analyze", "bottlenecks", "stuck"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s %s\n", result.Dataset, result.AvgTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
