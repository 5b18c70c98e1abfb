// Package codec serializes dynamic values and type graphs.
//
// The wire form is self-describing: every value carries its kind tag, so a
// decoded value reconstructs with exactly the kinds it was encoded with, and
// a decoded graph reconnects its NodeID references. JSON and YAML share the
// same wire shape.
//
// Decoding validates foreign input and reports problems as kagami.Issues
// with slash-separated paths into the document.
package codec
