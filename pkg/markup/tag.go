package markup

import (
	stdhtml "html"
	"strings"
)

// voidElements never carry content or a closing tag.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

// Tag renders <name attrs>content</name>. Content is written as-is; callers
// escape text with Encode. Void elements ignore content.
func Tag(name, content string, attrs Attributes) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, void := voidElements[name]; void {
		return VoidTag(name, attrs)
	}
	return OpenTag(name, attrs) + content + CloseTag(name)
}

// OpenTag renders the opening tag only.
func OpenTag(name string, attrs Attributes) string {
	return "<" + name + RenderAttributes(attrs) + ">"
}

// CloseTag renders </name>.
func CloseTag(name string) string {
	return "</" + name + ">"
}

// VoidTag renders an element without a closing tag, HTML5 style (no slash).
func VoidTag(name string, attrs Attributes) string {
	return "<" + name + RenderAttributes(attrs) + ">"
}

// Encode escapes text content.
func Encode(text string) string {
	return stdhtml.EscapeString(text)
}
