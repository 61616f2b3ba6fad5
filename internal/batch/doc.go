// Package batch reads topic files for generating several vocabulary sets in
// one run.
package batch
