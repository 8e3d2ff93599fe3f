package apod

// State is the position of the Fetcher in a fetch cycle.
type State int

const (
	StateIdle State = iota
	StateFetchingPage
	StateParsing
	StateFetchingImage
	StateDecoding
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingPage:
		return "fetching page"
	case StateParsing:
		return "parsing"
	case StateFetchingImage:
		return "fetching image"
	case StateDecoding:
		return "decoding"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}

	return "unknown"
}

// Busy reports whether s is one of the in-flight states.
func (s State) Busy() bool {
	return s >= StateFetchingPage && s <= StateDecoding
}
