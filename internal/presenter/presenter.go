// Package presenter renders solver results for humans.
// Rectangles are numbered from 1 in the order they were given.
package presenter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cenkalti/overlap/geometry"
	"github.com/cenkalti/overlap/internal/jsonutil"
	"github.com/cenkalti/overlap/intersections"
)

// Region is the JSON form of one overlap region.
type Region struct {
	X          int   `structs:"x"`
	Y          int   `structs:"y"`
	W          int   `structs:"w"`
	H          int   `structs:"h"`
	Rectangles []int `structs:"rectangles"`
}

// Inputs writes the numbered list of input rectangles.
func Inputs(w io.Writer, rects []geometry.Rectangle) error {
	var buf bytes.Buffer
	buf.WriteString("Inputs:\n")
	for i, r := range rects {
		fmt.Fprintf(&buf, "\t%d: Rectangle at (%d,%d), w=%d, h=%d.\n", i+1, r.X(), r.Y(), r.W(), r.H())
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Text writes one line per region, like
//
//	Between rectangle 1, 3 and 4 at (160, 160), w=190, h=20
func Text(w io.Writer, result intersections.Intersections) error {
	var buf bytes.Buffer
	buf.WriteString("Intersections:\n")
	for _, region := range result.Regions() {
		fmt.Fprintf(&buf, "\tBetween rectangle %s at (%d, %d), w=%d, h=%d\n",
			joinNumbers(result[region]), region.X(), region.Y(), region.W(), region.H())
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// JSON writes one compact JSON object per region.
func JSON(w io.Writer, result intersections.Intersections, colored bool) error {
	var buf bytes.Buffer
	for _, region := range result.Regions() {
		b, err := jsonutil.MarshalCompactPretty(NewRegion(region, result[region]), colored)
		if err != nil {
			return err
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// NewRegion converts constituents to 1-based rectangle numbers.
func NewRegion(region geometry.Rectangle, constituents []int) Region {
	numbers := make([]int, len(constituents))
	for i, c := range constituents {
		numbers[i] = c + 1
	}
	return Region{X: region.X(), Y: region.Y(), W: region.W(), H: region.H(), Rectangles: numbers}
}

// joinNumbers formats positions as "1, 2 and 3".
func joinNumbers(constituents []int) string {
	s := make([]string, len(constituents))
	for i, c := range constituents {
		s[i] = strconv.Itoa(c + 1)
	}
	if len(s) < 2 {
		return strings.Join(s, "")
	}
	return strings.Join(s[:len(s)-1], ", ") + " and " + s[len(s)-1]
}
