package encoder

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"

	"github.com/klauspost/compress/zlib"
)

// Row filter strategies per the PNG specification. adaptiveFilter is
// not a wire value; it selects the per-row minimum-sum heuristic.
const (
	filterNone = iota
	filterSub
	filterUp
	filterAverage
	filterPaeth
	adaptiveFilter
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// encodeFilteredPNG serializes img as an 8-bit PNG using one fixed row
// filter for the whole image (or the adaptive heuristic), with the IDAT
// stream deflated at best compression. Opaque images are written as
// truecolor RGB, others as RGBA.
func encodeFilteredPNG(img *image.NRGBA, opaque bool, filter int) ([]byte, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	bpp := 4
	colorType := byte(6) // RGBA
	if opaque {
		bpp = 3
		colorType = 2 // RGB
	}

	// Deflate the filtered scanlines.
	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, zlib.BestCompression)
	if err != nil {
		return nil, err
	}

	rowLen := w * bpp
	cur := make([]byte, rowLen)
	prior := make([]byte, rowLen)
	filtered := make([]byte, rowLen)
	scratch := make([]byte, rowLen)

	for y := 0; y < h; y++ {
		cur, prior = prior, cur
		off := y * img.Stride
		if bpp == 4 {
			copy(cur, img.Pix[off:off+rowLen])
		} else {
			for x := 0; x < w; x++ {
				copy(cur[x*3:x*3+3], img.Pix[off+x*4:off+x*4+3])
			}
		}
		if y == 0 {
			for i := range prior {
				prior[i] = 0
			}
		}

		f := filter
		if filter == adaptiveFilter {
			f = bestRowFilter(cur, prior, bpp, scratch)
		}
		filterRow(filtered, cur, prior, bpp, f)

		if _, err := zw.Write([]byte{byte(f)}); err != nil {
			return nil, err
		}
		if _, err := zw.Write(filtered); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	// Assemble the chunk stream.
	var out bytes.Buffer
	out.Grow(idat.Len() + 64)
	out.Write(pngSignature)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(h))
	ihdr[8] = 8 // bit depth
	ihdr[9] = colorType
	writeChunk(&out, "IHDR", ihdr)
	writeChunk(&out, "IDAT", idat.Bytes())
	writeChunk(&out, "IEND", nil)

	return out.Bytes(), nil
}

func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)

	buf.WriteString(typ)
	buf.Write(data)

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}

// filterRow applies one PNG row filter. cur and prior are unfiltered
// scanlines; dst receives the filtered bytes.
func filterRow(dst, cur, prior []byte, bpp, filter int) {
	switch filter {
	case filterNone:
		copy(dst, cur)
	case filterSub:
		for i := range cur {
			dst[i] = cur[i] - left(cur, i, bpp)
		}
	case filterUp:
		for i := range cur {
			dst[i] = cur[i] - prior[i]
		}
	case filterAverage:
		for i := range cur {
			dst[i] = cur[i] - byte((int(left(cur, i, bpp))+int(prior[i]))/2)
		}
	case filterPaeth:
		for i := range cur {
			dst[i] = cur[i] - paeth(left(cur, i, bpp), prior[i], upLeft(prior, i, bpp))
		}
	}
}

func left(row []byte, i, bpp int) byte {
	if i < bpp {
		return 0
	}
	return row[i-bpp]
}

func upLeft(prior []byte, i, bpp int) byte {
	if i < bpp {
		return 0
	}
	return prior[i-bpp]
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bestRowFilter picks the filter minimizing the sum of absolute signed
// filtered values, the standard compressibility heuristic.
func bestRowFilter(cur, prior []byte, bpp int, scratch []byte) int {
	best := filterNone
	bestSum := -1
	for f := filterNone; f <= filterPaeth; f++ {
		filterRow(scratch, cur, prior, bpp, f)
		sum := 0
		for _, v := range scratch {
			sum += abs(int(int8(v)))
		}
		if bestSum < 0 || sum < bestSum {
			bestSum = sum
			best = f
		}
	}
	return best
}
