// Package densify converts CSR (compressed sparse row) count matrices
// into dense delimited text tables, filling implicit zeros, so tools
// that cannot read the native sparse container can consume the data.
//
// The typical input is a single-cell expression matrix exported from an
// AnnData container: a CSR value array with its row pointer and column
// index arrays, plus observation (cell) and variable (gene) label sets.
// The output is one delimited record per row with a leading row name and
// a header record naming every column.
//
// # Architecture
//
// The conversion is a single-pass, single-threaded pipeline:
//
//	source.Container -> sparse.Matrix -> sparse.Orient -> row cursors -> sink.RecordSink
//
//   - pkg/sparse holds the validated CSR container, the O(nnz)
//     transpose, orientation selection, and the lazy row materializer
//   - pkg/source loads raw containers (JSON, optionally compressed)
//   - pkg/sink writes the delimited output (optionally compressed)
//   - internal/pipeline dispatches on the runtime element-type tag and
//     drives the row loop
//
// The engine is generic over the ten standard numeric element types;
// the type tag read from the container selects one instantiation at
// load time.
//
// # Quick Start
//
//	cfg := config.New()
//	cfg.Input.Path = "counts.json"
//	cfg.Output.Path = "counts.csv"
//	cfg.Output.Orientation = "var-names"
//
//	if err := pipeline.New(cfg).Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Or from the command line:
//
//	densify convert -f counts.json -c var-names -d comma -o counts.csv
package densify
