package models

// ViewState is the display state of the results view.
type ViewState int

const (
	// Loading: no result yet and a fetch is in flight.
	Loading ViewState = iota
	// Empty: no result and nothing in flight.
	Empty
	// Loaded: a result is being displayed.
	Loaded
)

func (v ViewState) String() string {
	switch v {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	default:
		return ""
	}
}

// StateOf derives the [ViewState] from the loading flag and the current result.
//
// A result always wins over the loading flag, so a previous artist stays visible while the next one loads.
func StateOf(loading bool, result *ArtistResult) ViewState {
	switch {
	case result != nil:
		return Loaded
	case loading:
		return Loading
	default:
		return Empty
	}
}
