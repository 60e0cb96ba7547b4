/*******************************************************************************
 * Copyright (c) 2025 Genome Research Ltd.
 *
 * Authors:
 *	- Sendu Bala <sb10@sanger.ac.uk>
 *
 * Permission is hereby granted, free of charge, to any person obtaining
 * a copy of this software and associated documentation files (the
 * "Software"), to deal in the Software without restriction, including
 * without limitation the rights to use, copy, modify, merge, publish,
 * distribute, sublicense, and/or sell copies of the Software, and to
 * permit persons to whom the Software is furnished to do so, subject to
 * the following conditions:
 *
 * The above copyright notice and this permission notice shall be included
 * in all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
 * EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
 * MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
 * IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY
 * CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
 * TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE
 * SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 ******************************************************************************/

package types

import "strings"

type Error string

func (e Error) Error() string { return string(e) }

// Layout is the read layout of the input files: single or paired ends.
type Layout string

const (
	LayoutSE         Layout = "SE"
	LayoutPE         Layout = "PE"
	ErrInvalidLayout        = Error("layout can only be 'SE' or 'PE'")
)

// StringToLayout converts a string to a Layout, case-insensitively.
func StringToLayout(s string) (Layout, error) {
	switch Layout(strings.ToUpper(s)) {
	case LayoutSE:
		return LayoutSE, nil
	case LayoutPE:
		return LayoutPE, nil
	default:
		return "", ErrInvalidLayout
	}
}

// Files returns the number of read files expected for this layout.
func (l Layout) Files() int {
	if l == LayoutPE {
		return 2
	}

	return 1
}

// Compression is the format trimmed output files are compressed with.
type Compression string

const (
	CompressionNone       Compression = ""
	CompressionGzip       Compression = "gz"
	CompressionBzip2      Compression = "bz2"
	ErrInvalidCompression             = Error("compression format can only be 'gz' or 'bz2'")
)

// StringToCompression converts a string to a Compression, case-insensitively.
func StringToCompression(s string) (Compression, error) {
	switch Compression(strings.ToLower(s)) {
	case CompressionGzip:
		return CompressionGzip, nil
	case CompressionBzip2:
		return CompressionBzip2, nil
	default:
		return CompressionNone, ErrInvalidCompression
	}
}

// Extension returns the file extension, including the leading period, for
// this compression, or the empty string for CompressionNone.
func (c Compression) Extension() string {
	if c == CompressionNone {
		return ""
	}

	return "." + string(c)
}

// Conversion is a quality score re-encoding Trimmomatic applies to its output.
type Conversion string

const (
	ConversionNone       Conversion = ""
	ConversionPhred33    Conversion = "TOPHRED33"
	ConversionPhred64    Conversion = "TOPHRED64"
	ErrInvalidConversion            = Error("quality scores can only be converted to phred33 or phred64")

	phred33 = 33
	phred64 = 64
)

// PhredToConversion converts a phred offset (33 or 64) to a Conversion.
func PhredToConversion(phred int) (Conversion, error) {
	switch phred {
	case phred33:
		return ConversionPhred33, nil
	case phred64:
		return ConversionPhred64, nil
	default:
		return ConversionNone, ErrInvalidConversion
	}
}
