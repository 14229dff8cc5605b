package frame

import jsoniter "github.com/json-iterator/go"

// json mirrors encoding/json semantics, including Marshaler and sorted map keys.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Pretty encodes f as indented JSON for people to read.
func Pretty(f Frame) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
