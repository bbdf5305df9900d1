// Package page builds the chrome shared by every preview (header with title
// and stats, toolbar controls, footer) and the HTML shell that hosts a
// preview in the browser.
package page

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// Selectors the engines patch.
const (
	StatsSelector  = ".preview-header-stats"
	SearchSelector = ".search-input"
	BodySelector   = ".preview-body"
)

// ProjectURL is linked from the footer.
const ProjectURL = "https://github.com/ziadkadry99/previewkit"

// Header returns the preview header: title, stats and toolbar.
func Header(title, stats string, toolbar ...*vnode.Node) *vnode.Node {
	info := vnode.El("div", vnode.A("class", "preview-header-info"),
		vnode.El("strong", vnode.A("class", "preview-header-title"), vnode.Text(title)),
	)
	if stats != "" {
		info.Append(vnode.El("span", vnode.A("class", "preview-header-stats"), vnode.Text(stats)))
	}

	header := vnode.El("div", vnode.A("class", "preview-header"), info)
	if len(toolbar) > 0 {
		header.Append(vnode.El("div", vnode.A("class", "preview-toolbar"), toolbar...))
	}
	header.Append(vnode.El("div", vnode.A("class", "theme-toggle-wrapper"),
		vnode.El("span", vnode.A("class", "theme-label"), vnode.Text("Theme")),
		vnode.El("div", vnode.A("class", "theme-toggle", "data-client", "theme", "title", "Toggle theme")),
	))
	return header
}

// SearchBox returns a search input that reports input events as action and
// a clear button reporting clearAction.
func SearchBox(action, clearAction, placeholder string) *vnode.Node {
	if placeholder == "" {
		placeholder = "Search... (Ctrl+F)"
	}
	return vnode.El("div", vnode.A("class", "search-box"),
		vnode.El("span", vnode.A("class", "search-icon"), vnode.Text("🔍")),
		vnode.El("input", vnode.A(
			"type", "text",
			"class", "search-input",
			"placeholder", placeholder,
			"data-action", action,
		)),
		vnode.El("button", vnode.A("class", "search-clear", "data-action", clearAction), vnode.Text("×")),
	)
}

// Button returns a toolbar button that reports action when clicked.
func Button(label, action, icon string, extra ...vnode.Attr) *vnode.Node {
	text := label
	if icon != "" {
		text = icon + " " + label
	}
	attrs := append(vnode.A("class", "action-btn", "data-action", action), extra...)
	return vnode.El("button", attrs, vnode.Text(text))
}

// Footer returns the page footer.
func Footer() *vnode.Node {
	return vnode.El("div", vnode.A("class", "preview-footer"),
		vnode.El("div", vnode.A("class", "footer-links"),
			vnode.El("a", vnode.A("href", ProjectURL, "target", "_blank", "class", "footer-link"), vnode.Text("Source")),
			vnode.El("a", vnode.A("href", ProjectURL+"/blob/main/LICENSE", "target", "_blank", "class", "footer-link"), vnode.Text("MIT License")),
		),
		vnode.El("div", vnode.A("class", "footer-copyright"),
			vnode.Text(strconv.Itoa(time.Now().Year())+" previewkit"),
		),
	)
}

// Body wraps content in the scrolling preview body under an element with id.
func Body(id string, content ...*vnode.Node) *vnode.Node {
	return vnode.El("div", vnode.A("class", "preview-body"),
		vnode.El("div", vnode.A("id", id), content...),
	)
}

// ScrollBody is Body for a container whose scroll position is reported to
// the session.
func ScrollBody(id string, content ...*vnode.Node) *vnode.Node {
	b := Body(id, content...)
	b.Children[0].SetAttr("data-scroll", "")
	return b
}

// Layout assembles header, body and footer.
func Layout(header, body *vnode.Node) *vnode.Node {
	return vnode.Fragment(header, body, Footer())
}

// ErrorState is shown in place of a preview whose payload could not be
// interpreted.
func ErrorState(title string, err error) *vnode.Node {
	return vnode.El("div", vnode.A("class", "preview-error"),
		vnode.El("h2", nil, vnode.Text(title)),
		vnode.El("pre", nil, vnode.Text(fmt.Sprint(err))),
	)
}

// Plural formats n with a singular or plural noun: "1 key", "3 keys".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
