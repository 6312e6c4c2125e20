package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute from a raw string.
func StyleAttr(style string) Attr { return attr("style", style) }

// StyleMap sets inline style properties. The patcher merges the map
// non-destructively into the host node's inline style.
func StyleMap(style map[string]string) Attr { return attr("style", style) }

// DataMap sets data-* custom attributes from a map. Each inner key k
// expands into a data-k attribute on the host node.
func DataMap(data map[string]string) Attr { return attr("data", data) }

// Data creates a single data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Form input attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute (for labels).
func For(id string) Attr { return attr("for", id) }

// Form state attributes. These are boolean attributes: presence, not
// value, controls host state, so the differ removes them when falsy.

// Disabled sets the disabled attribute.
func Disabled(on bool) Attr { return attr("disabled", on) }

// Checked sets the checked attribute.
func Checked(on bool) Attr { return attr("checked", on) }

// Selected sets the selected attribute.
func Selected(on bool) Attr { return attr("selected", on) }

// Readonly sets the readonly attribute.
func Readonly(on bool) Attr { return attr("readonly", on) }

// Required sets the required attribute.
func Required(on bool) Attr { return attr("required", on) }

// Autofocus sets the autofocus attribute.
func Autofocus(on bool) Attr { return attr("autofocus", on) }

// Hidden sets the hidden attribute.
func Hidden(on bool) Attr { return attr("hidden", on) }

// Open sets the open attribute (for details, dialog).
func Open(on bool) Attr { return attr("open", on) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Conditional attributes

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{} // Empty attr, will be ignored
}

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges multiple class values.
// Accepts string, []string, and map[string]bool.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			for class, include := range v {
				if include && class != "" {
					result = append(result, class)
				}
			}
		}
	}
	return attr("class", strings.Join(result, " "))
}
