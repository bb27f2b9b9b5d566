package search

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
)

// fillText clears the input with the given id and types the value. The site
// matches text filters in uppercase, so values are uppercased on the way in.
func fillText(p *rod.Page, id, value string) error {
	el, err := p.Element("#" + id)
	if err != nil {
		return models.NewSearchError(models.ErrCodeFieldMissing,
			fmt.Sprintf("input #%s not found: %v", id, err), err)
	}
	if err := el.SelectAllText(); err != nil {
		return fieldErr(id, "select text", err)
	}
	if err := el.Input(strings.ToUpper(value)); err != nil {
		return fieldErr(id, "type value", err)
	}
	return nil
}

// selectOption sets a <select> to the option with the given value and fires
// a change event so any attached handlers run.
func selectOption(p *rod.Page, id, value string) error {
	res, err := p.Eval(`(id, value) => {
		const sel = document.getElementById(id);
		if (!sel) return false;
		sel.value = value;
		sel.dispatchEvent(new Event('change', { bubbles: true }));
		return sel.value === value;
	}`, id, value)
	if err != nil {
		return fieldErr(id, "set select value", err)
	}
	if !res.Value.Bool() {
		return models.NewSearchError(models.ErrCodeNoOptionMatch,
			fmt.Sprintf("select #%s rejected value %q", id, value), nil)
	}
	return nil
}

// setRadio checks the radio in the named group whose value matches. An empty
// value is legal: several groups use value="" for the "both"/"any" choice.
func setRadio(p *rod.Page, name, value string) error {
	res, err := p.Eval(`(name, value) => {
		const radios = document.querySelectorAll('input[type="radio"][name="' + name + '"]');
		for (const r of radios) {
			if (r.value === value) {
				r.checked = true;
				r.dispatchEvent(new Event('change', { bubbles: true }));
				return true;
			}
		}
		return false;
	}`, name, value)
	if err != nil {
		return fieldErr(name, "set radio", err)
	}
	if !res.Value.Bool() {
		return models.NewSearchError(models.ErrCodeNoOptionMatch,
			fmt.Sprintf("radio group %q has no option with value %q", name, value), nil)
	}
	return nil
}

// submit triggers the search. The site's own JavaScript entry point is
// preferred when discovery found one and it exists on the page; otherwise
// the discovered button is clicked.
func submit(p *rod.Page, s form.Submit) error {
	if s.FuncName != "" {
		res, err := p.Eval(`(fn) => typeof window[fn] === 'function'`, s.FuncName)
		if err == nil && res.Value.Bool() {
			// The animal variant takes a tab argument; the others ignore it.
			if _, err := p.Eval(fmt.Sprintf(`() => %s('')`, s.FuncName)); err != nil {
				return models.NewSearchError(models.ErrCodeNavigation,
					fmt.Sprintf("search function %s failed", s.FuncName), err)
			}
			return nil
		}
	}

	if s.ButtonSelector != "" {
		el, err := p.Element(s.ButtonSelector)
		if err != nil {
			return models.NewSearchError(models.ErrCodeFormNotFound,
				fmt.Sprintf("submit button %q not found", s.ButtonSelector), err)
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return models.NewSearchError(models.ErrCodeNavigation,
				"submit button click failed", err)
		}
		return nil
	}

	return models.NewSearchError(models.ErrCodeFormNotFound,
		"no submit mechanism discovered on the page", nil)
}

func fieldErr(field, what string, err error) error {
	return models.NewSearchError(models.ErrCodeInternal,
		fmt.Sprintf("failed to %s on %q", what, field), err)
}
