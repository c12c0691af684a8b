// Package lingmatch computes similarity and accommodation scores between
// numeric feature representations of texts, with flexible definitions of
// what is compared to what.
//
// The engine resolves an ambiguous comparison specification (a keyword, a
// profile name, a row selection, an external matrix, a reducer, ...) and
// optional grouping vectors into a concrete comparison plan, reconciles the
// column spaces of the input and the baseline, dispatches the requested
// similarity metrics, and assembles an output aligned with the input rows.
//
// # Quick start
//
//	eng := lingmatch.New()
//	out, err := eng.Match(matrix,
//	    lingmatch.Group(speakerIDs),
//	    lingmatch.Metrics(metric.Cosine, metric.Canberra),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, label := range out.Sim.Flat.Labels {
//	    fmt.Println(label, out.Sim.Flat.Values[i])
//	}
//
// Comparison modes:
//
//   - mean / reducer: each row against its group's (or the whole input's)
//     column-wise reduced profile
//   - pairwise: every row against every other row
//   - sequential: adjacent speaker turns within ordered rows
//   - named profile: a row of the baseline-profile table, by name or "auto"
//   - row selection: selected rows form the baseline, the rest the input
//   - external matrix: an independently supplied comparison matrix
//
// One call is fully synchronous and owns its working values; engines are
// safe for concurrent use because per-call state never escapes the call.
package lingmatch
