package extract

import "errors"

// ErrNoImage is returned when neither a link nor an img src was found.
var ErrNoImage = errors.New("unable to parse image url from html")

type Result struct {
	Link  string
	Src   string
	Title string
}

// ImagePath returns the link when present and falls back to the img src.
func (r Result) ImagePath() string {
	if r.Link != "" {
		return r.Link
	}

	return r.Src
}

type Extractor interface {
	Extract(html string) (Result, error)
}
