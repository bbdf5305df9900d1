// Package dom describes the effects a preview engine has on the page. The
// engines never touch a real document; they emit patches to a Sink, and a
// transport (websocket, test recorder, static snapshot) applies them.
package dom

import (
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// Op names a patch operation understood by the client runtime.
type Op string

const (
	OpReplace     Op = "replace"      // set inner HTML of Target
	OpAddClass    Op = "add-class"    // add Class to Target
	OpRemoveClass Op = "remove-class" // remove Class from Target
	OpScrollTop   Op = "scroll-top"   // set scrollTop of Target to Value
	OpClipboard   Op = "clipboard"    // write Text to the clipboard
	OpStatus      Op = "status"       // show a transient status message
	OpDownload    Op = "download"     // offer Text as a file named Name
	OpRemove      Op = "remove"       // remove Target from the document
	OpAppend      Op = "append"       // append HTML to Target
	OpValue       Op = "value"        // set the value of the Target input to Text
)

// Patch is one DOM mutation. Target is a CSS selector.
type Patch struct {
	Op     Op     `json:"op"`
	Target string `json:"target,omitempty"`
	HTML   string `json:"html,omitempty"`
	Class  string `json:"class,omitempty"`
	Value  int    `json:"value,omitempty"`
	Text   string `json:"text,omitempty"`
	Name   string `json:"name,omitempty"`
	Mime   string `json:"mime,omitempty"`
}

// Sink receives patches in order.
type Sink interface {
	Apply(p Patch)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Patch)

// Apply calls f(p).
func (f SinkFunc) Apply(p Patch) { f(p) }

// Clipboard is the clipboard-write primitive.
type Clipboard interface {
	WriteText(text string) error
}

// Notifier shows a transient status message.
type Notifier interface {
	ShowStatus(message string)
}

// Replace builds an OpReplace patch from a node.
func Replace(target string, n *vnode.Node) Patch {
	return Patch{Op: OpReplace, Target: target, HTML: vnode.String(n)}
}

// Append builds an OpAppend patch from a node.
func Append(target string, n *vnode.Node) Patch {
	return Patch{Op: OpAppend, Target: target, HTML: vnode.String(n)}
}

// AddClass builds an OpAddClass patch.
func AddClass(target, class string) Patch {
	return Patch{Op: OpAddClass, Target: target, Class: class}
}

// RemoveClass builds an OpRemoveClass patch.
func RemoveClass(target, class string) Patch {
	return Patch{Op: OpRemoveClass, Target: target, Class: class}
}

// SetValue builds an OpValue patch.
func SetValue(target, value string) Patch {
	return Patch{Op: OpValue, Target: target, Text: value}
}

// ScrollTop builds an OpScrollTop patch.
func ScrollTop(target string, top int) Patch {
	return Patch{Op: OpScrollTop, Target: target, Value: top}
}

// SinkClipboard writes clipboard text by sending a patch to the page.
type SinkClipboard struct{ Sink Sink }

// WriteText implements Clipboard.
func (c SinkClipboard) WriteText(text string) error {
	c.Sink.Apply(Patch{Op: OpClipboard, Text: text})
	return nil
}

// SinkNotifier shows status messages by sending a patch to the page.
type SinkNotifier struct{ Sink Sink }

// ShowStatus implements Notifier.
func (n SinkNotifier) ShowStatus(message string) {
	n.Sink.Apply(Patch{Op: OpStatus, Text: message})
}
