package extract

import (
	"fmt"
	"strings"
)

const Default = "regex"

// Names lists the strategies accepted by New.
func Names() []string {
	return []string{"regex", "dom"}
}

func New(name string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "regex":
		return Regex{}, nil
	case "dom", "goquery":
		return DOM{}, nil
	}

	return nil, fmt.Errorf("unknown extractor %q (want one of %s)", name, strings.Join(Names(), ", "))
}
