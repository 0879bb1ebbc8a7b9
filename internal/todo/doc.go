// Package todo reads and updates the todo collection of the current space.
//
// Each space is backed by one file, <space>_todo.json, inside the data
// directory:
//
//	{
//	    "todos": [
//	        {
//	            "done": false,
//	            "id": "e1f3b0c1d5a4...",
//	            "title": "Write release notes"
//	        }
//	    ]
//	}
//
// The id is the SHA-1 hex digest of the title taken when the todo is
// created. Collisions are not checked.
//
// # Identifier Matching
//
// Every operation that takes an id accepts a prefix of it, so the short ids
// printed by "ls" can be typed back. The first todo in file order whose id
// starts with the argument wins for updates; removal drops every todo whose
// id starts with the argument. An empty argument matches nothing.
//
// An id that matches nothing is not an error: mutations report false and
// leave the file untouched.
package todo
