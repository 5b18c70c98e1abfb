package kagami

// Package kagami provides:
//
// - A reflection capability interface (Reflect) over a closed set of shapes
//   (struct, tuple struct, tuple, enum, list, map, scalar, opaque)
// - A dynamic Value union with a total order, usable as a map key
// - A deduplicated, cycle-safe type graph describing the shape of any type
//   that opts into reflection
// - Permissive, shape-tolerant patching of values
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations
//   under internal/.
// - Place the key-path engine under keypath/, codecs under codec/, node
//   builders under describe/, and the CLI under cmd/kagami.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v := user.ToValue()
//	got, ok := keypath.Get[string](&user, keypath.MustParse(".name"))
//
//	root := kagami.TypeOf(User{})
//	ty, ok := keypath.TypeAt(root, keypath.MustParse(".employer.name"))
