package form

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/herdscout/herdscout/models"
)

// controlSel matches every form control we care about. Compiled once;
// cascadia selectors are safe for concurrent reuse.
var controlSel = cascadia.MustCompile("input, select, textarea")

var buttonSel = cascadia.MustCompile(`input[type="button"], input[type="submit"], button`)

// searchFuncRe pulls the site's native search entry point out of an onclick
// attribute, e.g. `doSearch_Ranch()` or `doSearch_Animal('');`.
var searchFuncRe = regexp.MustCompile(`(doSearch_\w+)\s*\(`)

// Parse discovers the search form of the given kind in rendered page HTML.
// The same parser serves the browser's rendered DOM, the HTTP fast path and
// test fixtures. It fails with FORM_NOT_FOUND when the form's container is
// absent entirely; individual missing fields are reported via
// Schema.Missing and left to the caller to skip.
func Parse(htmlStr string, kind Kind) (*Schema, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, models.NewSearchError(models.ErrCodeInternal,
			"failed to parse page HTML", err)
	}

	scope, err := formScope(doc, kind)
	if err != nil {
		return nil, err
	}

	schema := &Schema{
		Kind:   kind,
		Fields: make(map[string]Field),
	}

	scope.FindMatcher(controlSel).Each(func(_ int, sel *goquery.Selection) {
		collectControl(schema, sel)
	})

	schema.Submit = detectSubmit(scope, kind)
	schema.Fingerprint = StructureFingerprint(scope)

	return schema, nil
}

// formScope narrows the document to the region holding the requested form.
// The ranch fields live loose in the page body rather than inside a <form>,
// so the ranch scope is the whole document.
func formScope(doc *goquery.Document, kind Kind) (*goquery.Selection, error) {
	switch kind {
	case KindAnimal:
		if sel := doc.Find("#" + AnimalContainerID); sel.Length() > 0 {
			return sel, nil
		}
		return nil, notFound(kind, "#"+AnimalContainerID)
	case KindEPD:
		if sel := doc.Find("#" + EPDFormID); sel.Length() > 0 {
			return sel, nil
		}
		return nil, notFound(kind, "#"+EPDFormID)
	default:
		if doc.Find("#"+RanchFieldName).Length() > 0 ||
			doc.Find("#"+RanchFieldLocation).Length() > 0 {
			return doc.Selection, nil
		}
		return nil, notFound(kind, "#"+RanchFieldName)
	}
}

func notFound(kind Kind, anchor string) error {
	return models.NewSearchError(models.ErrCodeFormNotFound,
		fmt.Sprintf("%s search form not found on page (looked for %s); the site layout may have changed", kind, anchor), nil)
}

// collectControl records one input/select/textarea into the schema. Radio
// inputs sharing a name are folded into a single radio-group field keyed by
// that name, with one option per radio in page order.
func collectControl(schema *Schema, sel *goquery.Selection) {
	id := sel.AttrOr("id", "")
	name := sel.AttrOr("name", "")
	tag := goquery.NodeName(sel)

	switch tag {
	case "select":
		if id == "" && name == "" {
			return
		}
		key := id
		if key == "" {
			key = name
		}
		f := Field{ID: id, Name: name, Type: TypeSelect}
		sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
			f.Options = append(f.Options, Option{
				Value: opt.AttrOr("value", ""),
				Label: collapseSpace(opt.Text()),
			})
		})
		addField(schema, key, f)

	case "input":
		typ := strings.ToLower(sel.AttrOr("type", "text"))
		switch typ {
		case "radio":
			if name == "" {
				return
			}
			opt := Option{
				Value: sel.AttrOr("value", ""),
				Label: sel.AttrOr("value", ""),
			}
			if f, ok := schema.Fields[name]; ok && f.Type == TypeRadio {
				f.Options = append(f.Options, opt)
				if sel.AttrOr("checked", "") != "" {
					f.Value = opt.Value
				}
				schema.Fields[name] = f
				return
			}
			f := Field{Name: name, Type: TypeRadio, Options: []Option{opt}}
			if sel.AttrOr("checked", "") != "" {
				f.Value = opt.Value
			}
			addField(schema, name, f)
		case "hidden":
			if name == "" && id == "" {
				return
			}
			key := id
			if key == "" {
				key = name
			}
			addField(schema, key, Field{
				ID: id, Name: name, Type: TypeHidden,
				Value: sel.AttrOr("value", ""),
			})
		case "button", "submit", "image", "checkbox":
			// Buttons are handled by detectSubmit; the site has no
			// checkbox filters.
		default:
			if id == "" {
				return
			}
			addField(schema, id, Field{
				ID: id, Name: name, Type: TypeText,
				Value:       sel.AttrOr("value", ""),
				Placeholder: sel.AttrOr("placeholder", ""),
			})
		}

	case "textarea":
		if id == "" {
			return
		}
		addField(schema, id, Field{ID: id, Name: name, Type: TypeText, Value: sel.Text()})
	}
}

func addField(schema *Schema, key string, f Field) {
	if _, dup := schema.Fields[key]; dup {
		return
	}
	schema.Fields[key] = f
	schema.Order = append(schema.Order, key)
}

// detectSubmit finds the search trigger within the form region. A native
// doSearch_* function referenced from any onclick wins; otherwise the first
// button whose label mentions "search" becomes the click fallback.
func detectSubmit(scope *goquery.Selection, kind Kind) Submit {
	var sub Submit

	scope.FindMatcher(buttonSel).EachWithBreak(func(_ int, btn *goquery.Selection) bool {
		onclick := btn.AttrOr("onclick", "")
		label := btn.AttrOr("value", "")
		if label == "" {
			label = collapseSpace(btn.Text())
		}

		matchesKind := false
		if m := searchFuncRe.FindStringSubmatch(onclick); m != nil {
			if funcMatchesKind(m[1], kind) {
				sub.FuncName = m[1]
				matchesKind = true
			}
		}
		if !matchesKind && !strings.Contains(strings.ToLower(label), "search") {
			return true // keep scanning
		}

		sub.ButtonLabel = label
		sub.ButtonSelector = buttonSelector(btn, label)
		return false
	})

	return sub
}

// funcMatchesKind keeps a ranch schema from latching onto doSearch_Epd when
// the whole page is in scope.
func funcMatchesKind(fn string, kind Kind) bool {
	switch kind {
	case KindRanch:
		return strings.EqualFold(fn, "doSearch_Ranch")
	case KindAnimal:
		return strings.EqualFold(fn, "doSearch_Animal")
	case KindEPD:
		return strings.EqualFold(fn, "doSearch_Epd")
	}
	return false
}

func buttonSelector(btn *goquery.Selection, label string) string {
	if id := btn.AttrOr("id", ""); id != "" {
		return "#" + id
	}
	tag := goquery.NodeName(btn)
	var b strings.Builder
	b.WriteString(tag)
	if name := btn.AttrOr("name", ""); name != "" {
		fmt.Fprintf(&b, `[name=%q]`, name)
	}
	if label != "" && tag == "input" {
		fmt.Fprintf(&b, `[value=%q]`, label)
	}
	return b.String()
}

// collapseSpace trims and squeezes runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
