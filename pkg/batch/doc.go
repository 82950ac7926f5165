// Package batch generates edge insertion and removal workloads against a
// built graph.
//
// A caller passes a capacity and two preallocated id arrays of at least that
// length. [Generate] fills them with up to capacity edges and returns how
// many it produced. The count is only smaller than the capacity when the
// [Unique] flag removes duplicates, or existing edges from an insertion.
//
//	src := make([]int32, 1000)
//	dst := make([]int32, 1000)
//	n, err := batch.Generate(g, 1000, src, dst, batch.Options{Kind: batch.Remove, Flags: batch.Unique})
//	if err != nil {
//	    return err
//	}
//	err = batch.Write(os.Stdout, src[:n], dst[:n])
//
// Removal batches only hold edges of the graph. [Weighted] picks sources in
// proportion to their out-degree; without it every vertex is equally likely.
package batch
