// Package dirsize computes the disk usage of the entries directly under a directory.
//
// Every child is sized recursively with fastwalk, siblings are sized in parallel
// by a bounded worker pool, and children below a minimum size are rolled up into
// a single skipped total. Failures on individual entries never abort a scan;
// only a root directory that cannot be listed is reported as an error.
package dirsize
