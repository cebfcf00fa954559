// Package classgen turns a structural JSON Schema and the sample it was
// inferred from into finalized class declarations.
//
// The work happens in three sequential passes over one explicit [Registry]:
//
//  1. [Derive] walks the schema and registers one [ClassCandidate] for the
//     root object and for every object definition, resolving each field to a
//     [TypeRef] and an array depth.
//  2. [Collect] walks the sample value in lock-step with the schema and
//     appends every observed raw value (or an absent / null marker) to the
//     matching field.
//  3. [Specialize] narrows each field to the smallest Go type that admits all
//     of its examples and normalizes field names with [NormalizeName].
//
// [Run] executes the passes in order. Nothing is shared between runs.
package classgen
