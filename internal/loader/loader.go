// Package loader reads rectangle descriptions in the form
//
//	{"rects": [{"x": 100, "y": 100, "w": 250, "h": 80}, ...]}
package loader

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/cenkalti/overlap/geometry"
	"github.com/cenkalti/overlap/internal/logger"
)

var log = logger.New("loader")

type document struct {
	Rects *[]record `json:"rects"`
}

type record struct {
	X *int `json:"x"`
	Y *int `json:"y"`
	W *int `json:"w"`
	H *int `json:"h"`
}

// Load reads rectangles from the JSON file at path.
func Load(path string) ([]geometry.Rectangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open rectangles file")
	}
	defer f.Close()

	rects, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load %s", path)
	}
	log.Debugf("loaded %d rectangles from %s", len(rects), path)
	return rects, nil
}

// Decode reads a rectangles document from r.
// Rectangles are returned in document order. Width and height are not required to be positive.
func Decode(r io.Reader) ([]geometry.Rectangle, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}
	var rest json.RawMessage
	if err := dec.Decode(&rest); err != io.EOF {
		return nil, errors.New("unexpected data after rectangles document")
	}
	if doc.Rects == nil {
		return nil, errors.New(`missing "rects" array`)
	}
	rects := make([]geometry.Rectangle, 0, len(*doc.Rects))
	for i, rec := range *doc.Rects {
		if rec.X == nil || rec.Y == nil || rec.W == nil || rec.H == nil {
			return nil, errors.Errorf("rectangle %d: x, y, w and h are required", i)
		}
		rect, err := geometry.New(*rec.X, *rec.Y, *rec.W, *rec.H)
		if err != nil {
			return nil, errors.Wrapf(err, "rectangle %d", i)
		}
		rects = append(rects, rect)
	}
	return rects, nil
}
