// Package main provides a performance benchmarking tool for the awrlens analysis pipeline.
// It measures parse and analyze times for every dump in a directory, once through the
// plain file loader and once through the caching loader, treating the first cached run
// as cold and averaging the rest as warm, and generates CSV output for documentation.
//
// Usage: go run benchmark/main.go [dump-dir]
//
//	dump-dir: Directory containing .out dump files
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/huangsam/awrlens/core"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/internal/iocache"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Report      string
	Dialect     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DumpDir     string
	NoCacheRuns int
	CacheRuns   int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [dump-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		DumpDir:     os.Args[1],
		NoCacheRuns: 5,
		CacheRuns:   6,
	}

	reports, err := findReports(config.DumpDir)
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, reports)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// findReports lists the dump files to benchmark
func findReports(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.out"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .out dumps found in %s", dir)
	}
	sort.Strings(matches)
	return matches, nil
}

// runBenchmarks executes the benchmark suite for every dump
func runBenchmarks(config BenchmarkConfig, reports []string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d dumps, no-cache: %d runs, cache: %d runs\n",
		len(reports), config.NoCacheRuns, config.CacheRuns)

	for _, report := range reports {
		fmt.Printf("Benchmarking %s\n", filepath.Base(report))
		results = append(results, runBenchmarkSuite(config, report))
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for one dump
func runBenchmarkSuite(config BenchmarkConfig, report string) BenchmarkResult {
	// Phase 1: No-cache runs
	_, noCacheTimes, dialect := runBenchmark(contract.FileLoader{}, report, config.NoCacheRuns)

	// Phase 2: Cache runs
	coldTime, warmTimes, _ := runBenchmark(iocache.NewCachingLoader(contract.FileLoader{}), report, config.CacheRuns)

	result := BenchmarkResult{
		Report:      filepath.Base(report),
		Dialect:     dialect,
		NoCacheTime: average(noCacheTimes),
		ColdTime:    "FAILED",
		WarmTime:    average(warmTimes),
	}
	if coldTime > 0 {
		result.ColdTime = fmt.Sprintf("%.3fms", coldTime)
	}
	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", result.NoCacheTime, result.ColdTime, result.WarmTime)
	return result
}

// runBenchmark loads and analyzes a dump numRuns times and returns the first time and all times in milliseconds
func runBenchmark(loader contract.ReportLoader, report string, numRuns int) (coldTime float64, times []float64, dialect string) {
	ctx := context.Background()
	for range numRuns {
		start := time.Now()
		res, err := loader.Load(ctx, report)
		if err != nil {
			fmt.Printf("  Warning: %v\n", err)
			continue
		}
		if _, err := core.AnalyzeReport(res, nil, core.Options{}); err != nil {
			fmt.Printf("  Warning: %v\n", err)
			continue
		}
		times = append(times, float64(time.Since(start).Microseconds())/1000)
		dialect = string(res.Model.Dialect())
	}
	if len(times) > 0 {
		coldTime = times[0]
		times = times[1:]
	}
	return coldTime, times, dialect
}

// average formats the mean of times, or FAILED when there are none
func average(times []float64) string {
	if len(times) == 0 {
		return "FAILED"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fms", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("awrlens_benchmark_%s.csv", timestamp))

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

	// Write header
	if err := writer.Write([]string{"report", "dialect", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Report, result.Dialect, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-24s (%s): No-cache: %s, Cold: %s, Warm: %s\n",
			result.Report, result.Dialect, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
