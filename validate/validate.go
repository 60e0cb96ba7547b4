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

// package validate checks single configuration values against the rules of
// the trimming configuration grammar.
//
// Every validator takes the raw text of a value and a human readable location
// of that value, and returns a normalised value or an error. Errors wrap one of
// this package's Error constants with the location, so use errors.Cause() to
// compare them.

package validate

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/wtsi-hgi/trimmomatic-automation/types"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrEmpty             = Error("no value given")
	ErrLayout            = Error("layout can only be 'SE' or 'PE'")
	ErrYesNo             = Error("value can only be 'yes' or 'no'")
	ErrTrueFalse         = Error("value can only be 'true' or 'false'")
	ErrInteger           = Error("value is not an integer")
	ErrNegative          = Error("value must not be negative")
	ErrNotPositive       = Error("value must be greater than 0")
	ErrFloat             = Error("value is not a decimal number")
	ErrStrictness        = Error("strictness must be between 0 and 1")
	ErrSequenceExtension = Error("read files must end in .fastq or .fq, optionally followed by .gz or .bz2")
	ErrAdapterExtension  = Error("adapter file must end in .fa or .fasta")
	ErrCompression       = Error("compression format can only be 'gz' or 'bz2'")
	ErrPhred             = Error("phred quality can only be 33 or 64")
	ErrFieldCount        = Error("wrong number of ':' separated fields")

	Yes   = "yes"
	No    = "no"
	True  = "true"
	False = "false"

	fieldSeparator = ":"
	bitSize        = 64
)

var (
	fastqExtensions       = []string{".fastq", ".fq"}
	compressionExtensions = []string{".gz", ".bz2"}
	adapterExtensions     = []string{".fa", ".fasta"}
)

func wrap(err error, location, value string) error {
	return errors.Wrapf(err, "%s (got %q)", location, value)
}

// NotEmpty returns the value with surrounding whitespace removed, or ErrEmpty
// if nothing is left.
func NotEmpty(value, location string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", errors.Wrap(ErrEmpty, location)
	}

	return clean, nil
}

// Layout returns the upper-cased layout, which must be SE or PE.
func Layout(value, location string) (types.Layout, error) {
	clean, err := NotEmpty(value, location)
	if err != nil {
		return "", err
	}

	layout, err := types.StringToLayout(clean)
	if err != nil {
		return "", wrap(ErrLayout, location, value)
	}

	return layout, nil
}

// YesNo returns the lower-cased value, which must be yes or no. Used for both
// skip and show flags.
func YesNo(value, location string) (string, error) {
	return oneOf(value, location, ErrYesNo, Yes, No)
}

// TrueFalse returns the lower-cased value, which must be true or false.
func TrueFalse(value, location string) (string, error) {
	return oneOf(value, location, ErrTrueFalse, True, False)
}

func oneOf(value, location string, errNotFound Error, allowed ...string) (string, error) {
	clean, err := NotEmpty(value, location)
	if err != nil {
		return "", err
	}

	clean = strings.ToLower(clean)

	for _, a := range allowed {
		if clean == a {
			return clean, nil
		}
	}

	return "", wrap(errNotFound, location, value)
}

// Integer parses a base 10 integer. Negative numbers are allowed.
func Integer(value, location string) (int, error) {
	clean, err := NotEmpty(value, location)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0, wrap(ErrInteger, location, value)
	}

	return n, nil
}

// NonNegativeInteger is like Integer, but also rejects numbers below 0.
func NonNegativeInteger(value, location string) (int, error) {
	n, err := Integer(value, location)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, wrap(ErrNegative, location, value)
	}

	return n, nil
}

// PositiveInteger is like Integer, but also rejects numbers below 1.
func PositiveInteger(value, location string) (int, error) {
	n, err := Integer(value, location)
	if err != nil {
		return 0, err
	}

	if n < 1 {
		return 0, wrap(ErrNotPositive, location, value)
	}

	return n, nil
}

// Float parses a decimal number.
func Float(value, location string) (float64, error) {
	clean, err := NotEmpty(value, location)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(clean, bitSize)
	if err != nil {
		return 0, wrap(ErrFloat, location, value)
	}

	return f, nil
}

// Strictness parses a decimal number that must be in the closed interval
// [0, 1].
func Strictness(value, location string) (float64, error) {
	f, err := Float(value, location)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) || f < 0 || f > 1 {
		return 0, wrap(ErrStrictness, location, value)
	}

	return f, nil
}

// Phred parses a phred quality offset, which must be 33 or 64.
func Phred(value, location string) (int, error) {
	n, err := Integer(value, location)
	if err != nil {
		return 0, err
	}

	if _, err = types.PhredToConversion(n); err != nil {
		return 0, wrap(ErrPhred, location, value)
	}

	return n, nil
}

// Compression returns the lower-cased compression format, which must be gz or
// bz2.
func Compression(value, location string) (types.Compression, error) {
	clean, err := NotEmpty(value, location)
	if err != nil {
		return types.CompressionNone, err
	}

	c, err := types.StringToCompression(clean)
	if err != nil {
		return types.CompressionNone, wrap(ErrCompression, location, value)
	}

	return c, nil
}

// SequenceFile returns the trimmed path, which must have a .fastq or .fq
// extension, optionally followed by a .gz or .bz2 extension.
func SequenceFile(value, location string) (string, error) {
	clean, err := NotEmpty(value, location)
	if err != nil {
		return "", err
	}

	if _, ok := sequenceStem(clean); !ok {
		return "", wrap(ErrSequenceExtension, location, value)
	}

	return clean, nil
}

// SequenceFilePrefix returns the basename of the given sequence file path with
// its sequence extensions removed: both extensions if compressed, otherwise
// just the one. Paths without a sequence extension have just their last
// extension removed.
func SequenceFilePrefix(path string) string {
	base := filepath.Base(path)

	if stem, ok := sequenceStem(base); ok {
		return stem
	}

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sequenceStem strips a fastq extension, and a compression extension before
// it, returning false if the path doesn't have those.
func sequenceStem(path string) (string, bool) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	if hasExtension(ext, fastqExtensions) {
		return stem, true
	}

	if !hasExtension(ext, compressionExtensions) {
		return "", false
	}

	ext = filepath.Ext(stem)
	if !hasExtension(ext, fastqExtensions) {
		return "", false
	}

	return strings.TrimSuffix(stem, ext), true
}

func hasExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}

	return false
}

// AdapterFile returns the trimmed path, which must have a .fa or .fasta
// extension.
func AdapterFile(value, location string) (string, error) {
	clean, err := NotEmpty(value, location)
	if err != nil {
		return "", err
	}

	if !hasExtension(filepath.Ext(clean), adapterExtensions) {
		return "", wrap(ErrAdapterExtension, location, value)
	}

	return clean, nil
}

// Fields splits a colon delimited option in to exactly n fields.
func Fields(value, location string, n int) ([]string, error) {
	clean, err := NotEmpty(value, location)
	if err != nil {
		return nil, err
	}

	fields := strings.Split(clean, fieldSeparator)
	if len(fields) != n {
		return nil, errors.Wrapf(ErrFieldCount, "%s needs %d fields (got %q)", location, n, value)
	}

	return fields, nil
}
