package page

import (
	"strings"

	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// IndexEntry is one link on a preview listing.
type IndexEntry struct {
	Name string
	Href string
	Kind string
}

// Index renders a listing of previews, or empty when there are none.
func Index(entries []IndexEntry, empty string) *vnode.Node {
	header := Header("Previews", Plural(len(entries), "preview", "previews"))
	if len(entries) == 0 {
		return Layout(header, Body("preview-index",
			vnode.El("div", vnode.A("class", "no-results"), vnode.Text(empty))))
	}
	list := vnode.El("ul", vnode.A("class", "preview-list"))
	for _, e := range entries {
		list.Append(vnode.El("li", nil,
			vnode.El("a", vnode.A("href", e.Href), vnode.Text(e.Name)),
			vnode.El("span", vnode.A("class", "preview-kind"), vnode.Text(" "+strings.ToUpper(e.Kind))),
		))
	}
	return Layout(header, Body("preview-index", list))
}
