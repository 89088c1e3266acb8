package models

import (
	"sort"
	"strings"
)

// DefaultAllowedProducts lists the products whose content is sent for translation
var DefaultAllowedProducts = []string{
	"account",
	"application",
	"conversion",
	"numbers",
	"number-insight",
	"sms",
	"tools",
	"verify",
	"voice",
}

// ProductAllowList is an immutable, ordered set of product identifiers
type ProductAllowList struct {
	items []string
	set   map[string]struct{}
}

// NewProductAllowList builds an allow-list, trimming blanks and duplicates
// while keeping the first-seen order.
func NewProductAllowList(products []string) ProductAllowList {
	l := ProductAllowList{set: make(map[string]struct{}, len(products))}
	for _, p := range products {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := l.set[p]; ok {
			continue
		}
		l.set[p] = struct{}{}
		l.items = append(l.items, p)
	}
	return l
}

// Items returns a copy of the allow-listed products in configuration order
func (l ProductAllowList) Items() []string {
	return append([]string(nil), l.items...)
}

// Len returns the number of allow-listed products
func (l ProductAllowList) Len() int {
	return len(l.items)
}

// Contains reports whether product is allow-listed (exact match)
func (l ProductAllowList) Contains(product string) bool {
	_, ok := l.set[product]
	return ok
}

// Matches returns the first allow-listed product that occurs as a substring of s
func (l ProductAllowList) Matches(s string) (string, bool) {
	for _, p := range l.items {
		if strings.Contains(s, p) {
			return p, true
		}
	}
	return "", false
}

// Intersects reports whether any of products is allow-listed
func (l ProductAllowList) Intersects(products []string) bool {
	for _, p := range products {
		if l.Contains(strings.TrimSpace(p)) {
			return true
		}
	}
	return false
}

// String renders the allow-list sorted, for logs
func (l ProductAllowList) String() string {
	sorted := l.Items()
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// Products is the products value declared in a content file's front matter
type Products struct {
	Values []string
	// Present is false when the front matter has no products key
	Present bool
	// Scalar is true when products was written as a single string
	Scalar bool
}

// Allowed reports whether the declared products overlap the allow-list. A
// list overlaps when one element is allow-listed; a single string overlaps
// when an allow-listed product occurs inside it.
func (p Products) Allowed(l ProductAllowList) bool {
	if !p.Present {
		return false
	}
	if p.Scalar {
		_, ok := l.Matches(strings.Join(p.Values, " "))
		return ok
	}
	return l.Intersects(p.Values)
}
