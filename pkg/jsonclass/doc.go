// Package jsonclass generates Go struct declarations from a sample JSON
// document.
//
// The sample is decoded with key order and number literals intact, a JSON
// Schema is inferred for it (or supplied by the caller), and the class model
// is derived, filled with the sample's values and specialized to concrete Go
// types before being rendered:
//
//	res, err := jsonclass.Generate(ctx, []byte(`{"id": 7, "tags": ["a"]}`), jsonclass.Options{})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Source)
//
// prints
//
//	package model
//
//	type Root struct {
//	    Id   int32    `json:"id"`
//	    Tags []string `json:"tags"`
//	}
//
// Integer fields start at int32 and widen to int64 or uint64 as the sample
// demands; number fields are float32 unless some value does not survive the
// round trip. Fields that may be missing or null become pointers, except
// strings. Fields whose type cannot be determined become any and are reported
// in Result.Diagnostics.
package jsonclass
