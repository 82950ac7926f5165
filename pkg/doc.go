// Package pkg provides the core libraries of csrgraph, a storage engine that
// turns coordinate (COO) edge lists into compressed sparse row (CSR) graphs.
//
// # Overview
//
// A CSR graph stores, for every vertex, an offset into one flat array of
// neighbor ids. The pkg directory is organized into four main areas:
//
//  1. [graph] - Structure resolution, allocation and COO to CSR conversion
//  2. [graphio] - Readers and writers (Matrix Market, edge lists, binary, DIMACS)
//  3. [stats] and [batch] - Degree statistics and update batch generation
//  4. [pipeline] - Orchestration (load → build → export) with caching
//
// # Architecture
//
// The typical data flow:
//
//	Market file / edge list
//	         ↓
//	    [graphio] package (parse into a COO)
//	         ↓
//	    [graph] package (resolve mode, allocate, convert)
//	         ↓
//	    [graphio], [stats], [render/dot] (export and inspect)
//
// Binary images written by [graphio.WriteBinary] skip the first two steps.
//
// # Quick Start
//
// Convert a Market file into an undirected graph:
//
//	import (
//	    "github.com/matzehuels/csrgraph/pkg/graph"
//	    "github.com/matzehuels/csrgraph/pkg/graphio"
//	)
//
//	// 1. Parse the edge list
//	coo, _ := graphio.ReadFile[int32]("web-Google.mtx", graphio.FormatAuto)
//
//	// 2. Convert
//	g, _ := graph.Build[int32, int32](coo,
//	    graph.Structure{Direction: graph.Undirected}, graph.Options{Sort: true})
//	defer g.Release()
//
//	// 3. Export
//	_ = graphio.WriteBinaryFile("web-Google.csr", g)
//
// # Main Packages
//
// [graph] - The [graph.Graph] type, generic over vertex and edge index
// widths. [graph.Resolve] picks the conversion mode from the native and the
// requested structure; [graph.Builder] owns the buffers and runs the
// conversion (self-loop removal, deduplication, optional relabeling and
// sorting).
//
// [graphio] - Input parsing and the three export formats. Binary images are
// tagged with their index widths and can be memory mapped.
//
// [stats] - Log2 out-degree distribution and degree analysis (average,
// deviation, Gini coefficient, rings, leaves).
//
// [batch] - Random insertion and removal batches for dynamic graph
// benchmarks.
//
// [render/dot] - Graphviz drawings of small graphs.
//
// ## Infrastructure
//
// [pipeline] - The build pipeline used by the CLI. Reproducible builds are
// cached as binary images.
//
// [cache] - File, Redis and null cache backends with content hashing.
//
// [observability] - Hooks for load, build, export and cache events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/graph/...     # Specific package
//	go test -run Example        # Examples only
//
// Set CSRGRAPH_TEST_REDIS to a server address to include the Redis cache.
package pkg
