// Package fs provides the filesystem seam used when writing ARFF outputs.
//
//   - [LocalFS]: production implementation on top of package os
//   - [FaultyFS]: test wrapper that injects failures per path pattern
//
// Production code uses fs.Default. Tests inject a FaultyFS to simulate an
// output directory that cannot be created or a file that cannot be written:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("enron1_test", fs.Fault{FailOnWrite: true})
//
// The package intentionally carries no context.Context: local filesystem
// calls are not interruptible at the syscall level.
package fs
