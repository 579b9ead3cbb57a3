// Package task runs the background maintenance jobs that keep per-user
// counters honest: zeroing the daily new-word counter after the UTC day
// rolls over and zeroing the per-sitting counter once a user has been idle
// long enough to count as having taken a break.
package task
