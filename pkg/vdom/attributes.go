package vdom

import (
	"strconv"
	"strings"
)

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("demo", "pong") → data-demo="pong"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(px int) Attr { return attr("width", strconv.Itoa(px)) }

// Height sets the height attribute.
func Height(px int) Attr { return attr("height", strconv.Itoa(px)) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Defer marks a script as deferred.
func Defer() Attr { return attr("defer", true) }

// TabIndex sets the tabindex attribute.
func TabIndex(i int) Attr { return attr("tabindex", strconv.Itoa(i)) }
