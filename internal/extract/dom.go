package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DOM parses the page and walks it instead of matching raw text. It is more
// forgiving about whitespace and attribute order than Regex.
type DOM struct{}

func (DOM) Extract(html string) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{}, fmt.Errorf("parse html: %w", err)
	}

	var res Result

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		img := a.ChildrenFiltered("img[src]").First()
		if img.Length() == 0 {
			return true
		}

		res.Link = strings.TrimSpace(a.AttrOr("href", ""))
		res.Src = strings.TrimSpace(img.AttrOr("src", ""))
		return false
	})

	if res.ImagePath() == "" {
		res.Src = strings.TrimSpace(doc.Find("img[src]").First().AttrOr("src", ""))
	}

	doc.Find("b").EachWithBreak(func(_ int, b *goquery.Selection) bool {
		if !b.Next().Is("br") {
			return true
		}

		res.Title = strings.TrimSpace(b.Text())
		return false
	})

	if res.ImagePath() == "" {
		return res, ErrNoImage
	}

	return res, nil
}
