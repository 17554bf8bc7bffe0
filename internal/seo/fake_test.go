package seo_test

import (
	"strings"

	"hongshengyuan.tech/web/internal/seo"
)

// memHead is an in-memory seo.Head used to check the manager without HTML.
type memHead struct {
	elems []*memElement
}

type memElement struct {
	tag   string
	attrs map[string]string
	text  string
}

func (h *memHead) Find(sel seo.Selector) (seo.Element, bool) {
	for _, el := range h.elems {
		if sel.Matches(el) {
			return el, true
		}
	}
	return nil, false
}

func (h *memHead) FindAll(sel seo.Selector) []seo.Element {
	var out []seo.Element
	for _, el := range h.elems {
		if sel.Matches(el) {
			out = append(out, el)
		}
	}
	return out
}

func (h *memHead) Create(tag string) seo.Element {
	return &memElement{tag: strings.ToLower(tag), attrs: map[string]string{}}
}

func (h *memHead) Append(el seo.Element) {
	h.elems = append(h.elems, el.(*memElement))
}

func (h *memHead) Remove(el seo.Element) {
	target := el.(*memElement)
	for i, e := range h.elems {
		if e == target {
			h.elems = append(h.elems[:i], h.elems[i+1:]...)
			return
		}
	}
}

func (e *memElement) Tag() string { return e.tag }

func (e *memElement) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

func (e *memElement) SetAttr(key, value string) {
	e.attrs[key] = value
}

func (e *memElement) Text() string     { return e.text }
func (e *memElement) SetText(t string) { e.text = t }
