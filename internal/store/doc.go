// Package store loads, caches and writes the JSON documents behind todoforge.
//
// Two kinds of document go through a Store:
//
//	config.json          {"current_space": "work", "spaces": ["work", "home"]}
//	<space>_todo.json    {"todos": [{"done": false, "id": "...", "title": "..."}]}
//
// Every document is memoized by path for the lifetime of the Store. A Get
// for a cached path returns the cached map without reading the file again,
// and a Save replaces the cache entry with exactly the value written. The
// cache is never shared between Store values, so one Store is created per
// process run and injected where it is needed.
//
// # File Format
//
// Documents are written with:
//   - 4-space indentation
//   - Sorted object keys
//   - No HTML escaping
//   - Trailing newline
//
// Writes overwrite the target in place. There is no temp-file rename and no
// file locking; the last writer wins.
package store
