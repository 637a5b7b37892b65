package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/govbills-crawler/internal/normalize"
)

// Rule selects one value per matched element: the attribute named by Attr,
// or the element's whitespace-collapsed text when Attr is empty.
type Rule struct {
	Selector string
	Attr     string
}

// Text is a Rule reading element text.
func Text(selector string) Rule {
	return Rule{Selector: selector}
}

// Attr is a Rule reading an attribute.
func Attr(selector, attr string) Rule {
	return Rule{Selector: selector, Attr: attr}
}

func (r Rule) value(s *goquery.Selection) string {
	if r.Attr == "" {
		return normalize.CollapseSpace(s.Text())
	}
	v, _ := s.Attr(r.Attr)
	return strings.TrimSpace(v)
}

// Chain is an ordered list of fallback rules.
type Chain []Rule

// Texts builds a Chain of text rules.
func Texts(selectors ...string) Chain {
	c := make(Chain, 0, len(selectors))
	for _, s := range selectors {
		c = append(c, Text(s))
	}
	return c
}

// First returns the first non-empty value, trying rules in order and matched
// elements in document order.
func (c Chain) First(root *goquery.Selection) string {
	for _, rule := range c {
		var found string
		root.Find(rule.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = rule.value(s)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// All collects every non-empty value from every rule. Duplicates are kept.
func (c Chain) All(root *goquery.Selection) []string {
	var out []string
	for _, rule := range c {
		root.Find(rule.Selector).Each(func(_ int, s *goquery.Selection) {
			if v := rule.value(s); v != "" {
				out = append(out, v)
			}
		})
	}
	return out
}

// FirstDate returns the first value produced by the chain that standardizes
// to a date, already in YYYY-MM-DD form.
func (c Chain) FirstDate(root *goquery.Selection) string {
	for _, rule := range c {
		var found string
		root.Find(rule.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = normalize.Date(rule.value(s))
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// Meta returns the content of <meta name="name">.
func Meta(root *goquery.Selection, name string) string {
	return Chain{Attr(`meta[name="`+name+`"]`, "content")}.First(root)
}

// Paragraphs returns every non-empty match of the first selector that has any.
func Paragraphs(root *goquery.Selection, selectors ...string) []string {
	for _, sel := range selectors {
		if paras := Texts(sel).All(root); len(paras) > 0 {
			return paras
		}
	}
	return nil
}

// ResolveURL makes href absolute against base. It returns "" when either
// side does not parse or href is empty.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(ref).String()
}
