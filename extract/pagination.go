package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageControl describes a next-page control found in the results. OnClick
// is the inline handler to evaluate when the control is script-driven;
// Selector locates the element for a plain click.
type PageControl struct {
	Selector string
	OnClick  string
	Label    string
}

// NextPage scans the results container for a control that advances to the
// next page. The site renders pagination inconsistently between record
// types, so this goes by link text ("Next", ">", ">>") rather than markup.
func NextPage(htmlStr string) (PageControl, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return PageControl{}, false
	}

	container := doc.Find("#" + containerID)
	if container.Length() == 0 {
		return PageControl{}, false
	}

	var control PageControl
	found := false
	container.Find("a, input[type=\"button\"], button").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		label := cellText(sel)
		if label == "" {
			if v, ok := sel.Attr("value"); ok {
				label = strings.TrimSpace(v)
			}
		}
		if !isNextLabel(label) {
			return true
		}

		control.Label = label
		if onclick, ok := sel.Attr("onclick"); ok && strings.TrimSpace(onclick) != "" {
			control.OnClick = strings.TrimSpace(onclick)
		}
		if id, ok := sel.Attr("id"); ok && id != "" {
			control.Selector = "#" + id
		}
		if control.OnClick == "" && control.Selector == "" {
			// An href-only link still works as a click target.
			if href, ok := sel.Attr("href"); ok && href != "" && href != "#" {
				control.Selector = "a[href=\"" + href + "\"]"
			}
		}
		found = control.OnClick != "" || control.Selector != ""
		return !found
	})

	return control, found
}

func isNextLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	// Covers "next", "next >", "next page", "next 25" and the like.
	if strings.HasPrefix(l, "next") {
		return true
	}
	switch l {
	case ">", ">>", "more":
		return true
	}
	return false
}
