// Package benchmark provides performance benchmarks for csrftok.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run a single algorithm:
//
//	go test -bench='BenchmarkVerify/sha256' -benchmem ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
