package extractor

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"coursework_service/internal/dates"
	"coursework_service/internal/model"

	"github.com/PuerkitoBio/goquery"
)

var partialDateRe = regexp.MustCompile(`\d{1,2}/\d{1,2}`)

// partialDates resolves every m/d code in text, skipping the ones that are not real dates.
func partialDates(year int, text string) []time.Time {
	var out []time.Time
	for _, code := range partialDateRe.FindAllString(text, -1) {
		if d, ok := dates.NormalizePartial(year, code); ok {
			out = append(out, d)
		}
	}
	return out
}

// firstPartialDate returns the sentinel when text carries no usable date.
func firstPartialDate(year int, text string) time.Time {
	if ds := partialDates(year, text); len(ds) > 0 {
		return ds[0]
	}
	return time.Time{}
}

func lastPartialDate(year int, text string) time.Time {
	if ds := partialDates(year, text); len(ds) > 0 {
		return ds[len(ds)-1]
	}
	return time.Time{}
}

// trailingMonthDay reads dates written as "... Mon Jan 15" from the last two fields of text.
func trailingMonthDay(year int, text string) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return time.Time{}, false
	}
	month := fields[len(fields)-2]
	if len(month) > 3 {
		month = month[len(month)-3:]
	}
	return dates.Normalize(year, month, fields[len(fields)-1])
}

// firstText returns the first non-blank text node directly under sel.
func firstText(sel *goquery.Selection) string {
	var text string
	sel.Contents().EachWithBreak(func(_ int, node *goquery.Selection) bool {
		if goquery.NodeName(node) != "#text" {
			return true
		}
		if t := strings.TrimSpace(node.Text()); t != "" {
			text = t
			return false
		}
		return true
	})
	return text
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolveLink(base, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		return ref.String()
	}
	return baseURL.ResolveReference(ref).String()
}

func links(base string, anchors *goquery.Selection) []model.Link {
	out := make([]model.Link, 0, anchors.Length())
	anchors.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		out = append(out, model.Link{URL: resolveLink(base, href), Label: cleanText(a.Text())})
	})
	return out
}
