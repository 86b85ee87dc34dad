package content

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var weekHeading = regexp.MustCompile(`^Week\s+(\d+)\s*:\s*(.+)$`)

// ParseCurriculumHTML extracts weekly themes from an HTML curriculum
// export. Each week is an h2 of the form "Week N: Title", followed by a
// paragraph with the theme and an unordered list of focus points. Used to
// refresh the embedded weeks.yaml from the editorial source.
func ParseCurriculumHTML(r io.Reader) ([]WeekTheme, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse curriculum HTML: %w", err)
	}

	var weeks []WeekTheme
	doc.Find("h2").Each(func(_ int, h *goquery.Selection) {
		m := weekHeading.FindStringSubmatch(strings.TrimSpace(h.Text()))
		if m == nil {
			return
		}
		week, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}

		theme := WeekTheme{Week: week, Title: strings.TrimSpace(m[2])}
		if p := h.NextFiltered("p"); p.Length() > 0 {
			theme.Theme = strings.TrimSpace(p.Text())
		}
		h.NextUntil("h2").Filter("ul").First().Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				theme.Focus = append(theme.Focus, text)
			}
		})
		weeks = append(weeks, theme)
	})

	if len(weeks) == 0 {
		return nil, fmt.Errorf("no week headings found in curriculum HTML")
	}
	return weeks, nil
}
