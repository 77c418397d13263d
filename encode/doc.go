// Package encode renders IR nodes to text, suspending at pending values.
//
// # Usage
//
//	// Render a tree that may contain waiters and sources
//	for frag, err := range encode.Encode(ctx, node) {
//	    if err != nil {
//	        return err
//	    }
//	    io.WriteString(w, frag)
//	}
//
//	// Or drain in one call
//	err := encode.EncodeTo(ctx, w, node)
//
//	// With options
//	s, err := encode.String(ctx, node, encode.WithASCIIOnly(true))
//
// Fragments come out as soon as they are determined: everything up to and
// including a key is available before the key's value resolves, and each
// element of a pending sequence is rendered as it arrives. The
// concatenation of all fragments equals the synchronous rendering of the
// fully resolved tree.
//
// # Related Packages
//
//   - github.com/awaitjson/go-awaitjson/ir - node trees, waiters, sources
//   - github.com/awaitjson/go-awaitjson/stream - the underlying push encoder
package encode
