// Package archive moves the local store aside so that learning can start
// over without losing earlier vocabulary sets.
package archive
