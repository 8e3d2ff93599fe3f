// Package apod runs the fetch cycle for the Astronomy Picture of the Day:
// download the homepage, extract the picture location and title, download
// and decode the picture, and save it as PNG on request.
//
// A Fetcher owns one ImageContext. It is the only writer; display code reads
// it through Snapshot.
package apod
