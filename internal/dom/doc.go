// Package dom models the read-only document snapshot the inspector works on.
//
// # Purpose
//
// The inspector never talks to a live browser. It consumes a Snapshot: the
// elements of a rendered document in traversal order, each with its tag,
// attributes, layout visibility, computed visibility and absolute border box,
// plus the viewport (size and scroll offset) the document was captured with.
//
// Snapshots come from three places:
//
//   - JSON exported by a browser-side collector (see codec.go for field names).
//   - The same payload encoded with msgpack, for large documents.
//   - Plain HTML, parsed with golang.org/x/net/html. Geometry is taken from a
//     data-box="x y w h" attribute or inline left/top/width/height, since no
//     layout engine runs here.
//
// # Query
//
// Rules depend on the Query interface only. It answers "which elements match"
// in document order, either over every element or over layout-visible ones,
// and resolves ids. *Snapshot is the only implementation.
//
// # Document order
//
// Element.Index is the traversal position assigned when a snapshot is loaded
// (Reindex). It is unique and strictly increasing, and tie-breaks that need
// "document order" must use it explicitly.
package dom
