package vectorize

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strconv"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// WriteSVG serializes the document as a standalone SVG image.
//
// Each VectorPath becomes one <path> element whose data holds one closed
// "M ... Z" subpath per ring. Coordinates are rounded to two decimals. The
// output depends only on the document, so equal documents produce identical
// bytes.
func (d *Document) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(`<svg xmlns="`)
	bw.WriteString(svgNamespace)
	bw.WriteString(`" width="`)
	bw.WriteString(strconv.Itoa(d.Width))
	bw.WriteString(`" height="`)
	bw.WriteString(strconv.Itoa(d.Height))
	bw.WriteString(`">`)
	bw.WriteByte('\n')

	var buf []byte
	for _, p := range d.Paths {
		buf = buf[:0]
		buf = append(buf, `  <path d="`...)
		buf = appendPathData(buf, p.Subpaths)
		buf = append(buf, `" fill="`...)
		buf = append(buf, p.FillColor...)
		buf = append(buf, `" stroke="`...)
		buf = append(buf, p.StrokeColor...)
		buf = append(buf, `" stroke-width="`...)
		buf = appendNumber(buf, p.StrokeWidth)
		buf = append(buf, `" fill-rule="`...)
		buf = append(buf, p.FillRule.String()...)
		buf = append(buf, `" stroke-linejoin="round" stroke-linecap="round"/>`...)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// SVG returns the document serialized by WriteSVG.
func (d *Document) SVG() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = d.WriteSVG(&buf)
	return buf.Bytes()
}

func appendPathData(buf []byte, rings []Ring) []byte {
	for i, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		if i > 0 {
			buf = append(buf, ' ')
		}
		for j, v := range ring {
			if j == 0 {
				buf = append(buf, "M "...)
			} else {
				buf = append(buf, " L "...)
			}
			buf = appendNumber(buf, v.X)
			buf = append(buf, ',')
			buf = appendNumber(buf, v.Y)
		}
		buf = append(buf, " Z"...)
	}
	return buf
}

// appendNumber formats v with at most two decimals and no trailing zeros.
func appendNumber(buf []byte, v float64) []byte {
	r := math.Round(v*100) / 100
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return strconv.AppendFloat(buf, r, 'f', -1, 64)
}
