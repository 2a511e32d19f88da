// Package catalog defines the collaborator contract between the search core
// and the remote music catalog transport.
//
// # Backend Interface
//
// A [Backend] owns the connection to the remote catalog service and the
// processing thread(s) the service's operations run on. The search core
// consumes it as an opaque capability: create an operation, read its state,
// release it. Completion is delivered asynchronously through the
// [CompleteFunc] handed to CreateSearch, potentially from a different
// goroutine than the one that issued the request.
//
// # Resource Handles
//
// A [Resource] is a reference-counted handle to one remote search operation
// and its buffered result data. Every holder that stores a reference must
// Release exactly once; the backend frees the underlying operation when the
// count reaches zero.
//
// # Error Codes
//
// Remote failures surface verbatim as a [Code] on the resource. [Code.Err]
// maps a non-zero code to a [*RemoteError] for callers that want a Go error.
package catalog
