// Package search implements asynchronous, paginated search against a remote
// music catalog.
//
// # Lifecycle
//
// A [Search] is a handle to one in-flight or completed remote operation.
// [New] registers the handle under a fresh correlation key and issues the
// remote request; the handle is immediately pending. When the backend
// finishes the operation it calls [Registry.Dispatch] with the key, which
// fires the handle's completion signal and then invokes the user callback.
//
// Accessors are safe to call at any time: before completion the category
// accessors return empty pages, after completion they return the buffered
// matches. A remote error surfaces from every accessor regardless of loaded
// state. Only [Search.Load] blocks.
//
// # Pagination
//
// [Search.More] replays the request with every category offset advanced by
// the previous window's count. Each page is an independent remote operation;
// the service has no cursor concept.
package search
