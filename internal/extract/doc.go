// Package extract pulls the picture location and title out of the APOD
// homepage HTML. The fetch flow only sees the Extractor interface, so the
// matching strategy can be swapped without touching it.
package extract
