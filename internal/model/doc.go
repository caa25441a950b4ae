// Package model holds the metadata and helpers shared by every API model:
// wire-name tables derived once per type, canonical string formatting for
// path and query values, a sanitizer that turns models into plain JSON
// trees, struct-tag validation, and discriminated union decoding.
//
// Models themselves are plain structs whose json tags declare the wire name
// of each field and whose validate tags declare required fields and enum
// membership. Nothing here keeps mutable global state beyond the per-type
// metadata cache, which is written once per type and never changed.
package model
