// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for browsing search results:
//  1. [LoadingView] : The search request is in flight
//  2. [ResultsView] : Browse matches per category, paging forward on demand
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Each forward page is a brand-new search operation whose windows advance past the previous page; the model swaps its handle when the page arrives.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, m, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
