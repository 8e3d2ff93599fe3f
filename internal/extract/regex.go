package extract

import (
	"regexp"
	"strings"
)

var (
	reLinkImg = regexp.MustCompile(`(?i)<br>\s+<a href="(?P<link>.*?)">\s<img src="(?P<src>.*?)"`)
	reImgOnly = regexp.MustCompile(`(?i)<img src="(?P<src>.*?)"`)
	reTitle   = regexp.MustCompile(`(?i)<b>(?P<title>.*?)</b>\s?<br>`)
)

// Regex matches the page with fixed patterns, first match wins.
type Regex struct{}

func (Regex) Extract(html string) (Result, error) {
	var res Result

	if m := reLinkImg.FindStringSubmatch(html); m != nil {
		res.Link = group(reLinkImg, m, "link")
		res.Src = group(reLinkImg, m, "src")
	}

	if res.ImagePath() == "" {
		if m := reImgOnly.FindStringSubmatch(html); m != nil {
			res.Src = group(reImgOnly, m, "src")
		}
	}

	if m := reTitle.FindStringSubmatch(html); m != nil {
		res.Title = strings.TrimSpace(group(reTitle, m, "title"))
	}

	if strings.TrimSpace(res.ImagePath()) == "" {
		return res, ErrNoImage
	}

	return res, nil
}

func group(re *regexp.Regexp, m []string, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || i >= len(m) {
		return ""
	}

	return m[i]
}
