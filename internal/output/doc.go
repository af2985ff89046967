// Package output holds the consumers of convergence records: the durable
// text log, the interactive progress line, the SQLite run store and the
// log-log decay plot.
package output
