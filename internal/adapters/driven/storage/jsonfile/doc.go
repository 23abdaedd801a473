// Package jsonfile provides a read-only driven.FoodStore backed by a JSON
// food list, either the catalog bundled into the binary or a file on disk.
//
// File catalogs can be watched: edits to the file are picked up without a
// restart. A file that fails to parse leaves the previous contents in place.
package jsonfile
