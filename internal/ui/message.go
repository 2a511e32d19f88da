package ui

import (
	"github.com/cadencefm/cadence/internal/search"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchLoaded MsgKind = iota
	MsgMoreLoaded
)

type searchResult struct {
	search *search.Search
	err    error
}

// searchLoadedMsg is the constructor for [MsgSearchLoaded]
func searchLoadedMsg(s *search.Search, err error) Msg {
	return Msg{kind: MsgSearchLoaded, data: searchResult{s, err}}
}

// moreLoadedMsg is the constructor for [MsgMoreLoaded]
func moreLoadedMsg(s *search.Search, err error) Msg {
	return Msg{kind: MsgMoreLoaded, data: searchResult{s, err}}
}
