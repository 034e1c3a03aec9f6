// Package resource bounds what a conversion run may consume.
//
// A Controller tracks three budgets:
//
//   - memory: bytes reserved for in-memory ARFF documents and cached archive blocks
//   - workers: dataset families converted at the same time
//   - IO: bytes per second read from archives
//
// A nil *Controller is valid and imposes no limits.
package resource
