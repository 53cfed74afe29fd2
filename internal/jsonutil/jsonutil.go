package jsonutil

import (
	"github.com/fatih/structs"
	"github.com/hokaccha/go-prettyjson"
)

func newFormatter(colored bool) *prettyjson.Formatter {
	f := prettyjson.NewFormatter()
	f.Indent = 0
	f.Newline = ""
	f.DisabledColor = !colored
	return f
}

// MarshalCompactPretty formats the fields of struct v as a single line JSON object with sorted keys.
// Field names are taken from `structs` tags. Color codes are added if colored is true and stdout is a terminal.
func MarshalCompactPretty(v any, colored bool) ([]byte, error) {
	return newFormatter(colored).Marshal(structs.Map(v))
}
