// Package analysis summarizes sample sets and correspondence sets.
//
//   - [Histogram]: brightness distribution of a sample set
//   - [Travel]: distance statistics of a correspondence set
//   - [EaseCurve]: the eased progress curve over a run, for charts
//
// The Plot helpers render these as terminal charts:
//
//	hist := analysis.Histogram(samples, 32)
//	fmt.Println(analysis.PlotHistogram(hist, "source brightness"))
package analysis
