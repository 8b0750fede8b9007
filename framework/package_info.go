// Package framework provides the general-purpose pieces of the test harness:
// result aggregation, test filtering, debug log capture, and test reporting.
// It knows nothing about the wire protocol or the command suite; those live
// in the protocol, client, and commandtests packages.
package framework
