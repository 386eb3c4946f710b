// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the hot paths of a build, suitable
// for generating a PGO profile:
//   - parsing materials and relaxed jbeam documents
//   - canonical skin selection and normalization
//   - registry lookup and search
//   - packaging a project end to end
//
// To generate a profile, run:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
