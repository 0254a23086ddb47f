// Package generator produces the deterministic synthetic sales dataset used
// as the pipeline's raw input. A fixed seed always yields the same batch, so
// generated datasets are reproducible across machines and runs.
package generator
