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

// package params holds the parameters of a trimming run, extracted and
// validated from either an XML configuration file or command line arguments.

package params

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/wtsi-hgi/trimmomatic-automation/types"
	"github.com/wtsi-hgi/trimmomatic-automation/validate"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrChildCount         = Error("wrong number of elements")
	ErrUnknownName        = Error("unrecognised name; has the configuration template been modified?")
	ErrMissingElement     = Error("missing element")
	ErrInputCount         = Error("wrong number of read files for the layout")
	ErrConversionConflict = Error("only one of tophred33 and tophred64 may be given")
	ErrOutputClash        = Error("read files would be trimmed to the same output files")

	DefaultThreads          = 1
	DefaultMinAdapterLength = 8
	DefaultKeepBothReads    = true
	FlatOutputDir           = "."

	fieldSeparator = ":"
)

// Params are the normalised parameters of a trimming run. Optional parameters
// are nil (or their type's zero value) when not requested.
type Params struct {
	Layout    types.Layout
	Inputs    []string
	OutputDir string
	Threads   int

	Clip *Clip

	SlidingWindow *SlidingWindow
	MaxInfo       *MaxInfo
	Leading       *int
	Trailing      *int
	Crop          *int
	HeadCrop      *int
	MinLen        *int
	AvgQual       *int

	Convert        types.Conversion
	Compress       types.Compression
	Phred          int
	ShowSingletons bool
}

// HasQuality returns true if at least one quality trimming parameter is set.
func (p *Params) HasQuality() bool {
	return p.SlidingWindow != nil || p.MaxInfo != nil || p.Leading != nil ||
		p.Trailing != nil || p.Crop != nil || p.HeadCrop != nil ||
		p.MinLen != nil || p.AvgQual != nil
}

// Clip holds the ILLUMINACLIP adapter trimming settings.
type Clip struct {
	AdapterFile         string
	SeedMismatches      int
	PalindromeThreshold int
	SimpleThreshold     int

	// Optional is nil when the optional settings were not supplied at all,
	// which is the case for command line arguments.
	Optional *ClipOptional
}

// ClipOptional holds the optional trailing ILLUMINACLIP settings.
type ClipOptional struct {
	MinAdapterLength int
	KeepBothReads    bool
}

// String returns the colon separated form Trimmomatic expects after
// "ILLUMINACLIP:".
func (c *Clip) String() string {
	fields := []string{
		c.AdapterFile,
		strconv.Itoa(c.SeedMismatches),
		strconv.Itoa(c.PalindromeThreshold),
		strconv.Itoa(c.SimpleThreshold),
	}

	if c.Optional != nil {
		fields = append(fields,
			strconv.Itoa(c.Optional.MinAdapterLength),
			strconv.FormatBool(c.Optional.KeepBothReads))
	}

	return strings.Join(fields, fieldSeparator)
}

// SlidingWindow holds the SLIDINGWINDOW quality trimming settings.
type SlidingWindow struct {
	WindowSize      int
	RequiredQuality int
}

func (s *SlidingWindow) String() string {
	return strconv.Itoa(s.WindowSize) + fieldSeparator + strconv.Itoa(s.RequiredQuality)
}

// MaxInfo holds the MAXINFO adaptive quality trimming settings.
type MaxInfo struct {
	TargetLength int
	Strictness   float64
}

func (m *MaxInfo) String() string {
	return strconv.Itoa(m.TargetLength) + fieldSeparator +
		strconv.FormatFloat(m.Strictness, 'f', -1, 64)
}

// checkOutputNames makes sure no two inputs would be trimmed to the same output
// files, which are named after each input's basename minus its extensions.
func checkOutputNames(inputs []string) error {
	seen := make(map[string]string, len(inputs))

	for _, input := range inputs {
		prefix := validate.SequenceFilePrefix(input)

		if other, ok := seen[prefix]; ok {
			return errors.Wrapf(ErrOutputClash, "%s and %s both have the prefix %q; rename one of them",
				other, input, prefix)
		}

		seen[prefix] = input
	}

	return nil
}

func intPtr(n int) *int {
	return &n
}
