package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// PPMMagic is the magic token of the plain (ASCII) PPM format.
const PPMMagic = "P3"

// DecodePPM reads a plain PPM (P3) image.
//
// Lines whose first character is '#' are comments and are skipped entirely.
// The remaining text is split on whitespace and read in order: magic token,
// width, height, max value, then width*height RGB triples in row-major order.
//
// # Errors
//
//   - ErrValidation "invalid PPM" if the first token is not P3
//   - ErrValidation if a header or sample token is missing or not an integer
//   - ErrValidation if the header announces more pixels than the file holds
//   - ErrValidation if a sample is outside [0,255]
//
// The max value is read but not used for scaling; samples are taken as 8-bit.
func DecodePPM(r io.Reader) (*imaging.Image, error) {
	tokens, err := ppmTokens(r)
	if err != nil {
		return nil, err
	}

	next := 0
	nextInt := func(what string) (int, error) {
		if next >= len(tokens) {
			return 0, fmt.Errorf("%w: invalid PPM file: missing %s", imaging.ErrValidation, what)
		}
		tok := tokens[next]
		next++
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid PPM file: %s %q is not an integer",
				imaging.ErrValidation, what, tok)
		}
		return v, nil
	}

	if len(tokens) == 0 || tokens[0] != PPMMagic {
		got := ""
		if len(tokens) > 0 {
			got = tokens[0]
		}
		return nil, fmt.Errorf("%w: invalid PPM file: plain PPM should begin with %s, got %q",
			imaging.ErrValidation, PPMMagic, got)
	}
	next++

	width, err := nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := nextInt("height")
	if err != nil {
		return nil, err
	}
	if _, err := nextInt("max value"); err != nil {
		return nil, err
	}
	if width >= 0 && height >= 0 && !imaging.FitsPixels(width, height, (len(tokens)-next)/3) {
		return nil, fmt.Errorf("%w: invalid PPM file: missing sample data for %dx%d image",
			imaging.ErrValidation, width, height)
	}

	img, err := imaging.NewImage(width, height)
	if err != nil {
		return nil, err
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			var rgb [3]int
			for c := range rgb {
				if rgb[c], err = nextInt("sample"); err != nil {
					return nil, err
				}
			}
			if err := img.SetPixelAt(row, col, rgb[0], rgb[1], rgb[2]); err != nil {
				return nil, err
			}
		}
	}
	return img, nil
}

// ppmTokens strips comment lines and returns the whitespace-separated fields.
// Lines may be of any length.
func ppmTokens(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	var tokens []string
	for {
		line, err := br.ReadString('\n')
		if !strings.HasPrefix(line, "#") {
			tokens = append(tokens, strings.Fields(line)...)
		}
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading PPM: %v", imaging.ErrIO, err)
		}
	}
}

// EncodePPM writes img as plain PPM: the header "P3\n<width> <height>\n255\n"
// followed by each pixel's red, green and blue sample on its own line,
// row-major from the top-left.
func EncodePPM(w io.Writer, img *imaging.Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", PPMMagic, img.Width(), img.Height(), imaging.MaxChannel)
	for _, p := range img.Pixels() {
		fmt.Fprintf(bw, "%d\n%d\n%d\n", p.R, p.G, p.B)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing PPM: %v", imaging.ErrIO, err)
	}
	return nil
}
