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

package params

import (
	"github.com/pkg/errors"
	"github.com/wtsi-hgi/trimmomatic-automation/types"
	"github.com/wtsi-hgi/trimmomatic-automation/validate"
)

const (
	clipFields          = 4
	slidingWindowFields = 2
	maxInfoFields       = 2
)

// Args are the raw values of command line arguments. Named options are nil
// when they were not supplied.
type Args struct {
	Layout string
	Inputs []string

	Threads       *string
	Phred         *string
	IlluminaClip  *string
	SlidingWindow *string
	MaxInfo       *string
	Leading       *string
	Trailing      *string
	Crop          *string
	HeadCrop      *string
	MinLen        *string
	AvgQual       *string
	Compress      *string

	ToPhred33 bool
	ToPhred64 bool
}

// FromArgs validates command line arguments and converts them to Params.
//
// Unlike FromXML, the optional ILLUMINACLIP settings are never defaulted, and
// the output directory is always the current directory.
func FromArgs(a Args) (*Params, error) {
	layout, err := validate.Layout(a.Layout, "layout argument")
	if err != nil {
		return nil, err
	}

	inputs, err := inputsFromArgs(layout, a.Inputs)
	if err != nil {
		return nil, err
	}

	p := &Params{
		Layout:    layout,
		Inputs:    inputs,
		OutputDir: FlatOutputDir,
		Threads:   DefaultThreads,
	}

	for _, extract := range []func() error{
		func() error { return threadsFromArgs(a, p) },
		func() error { return phredFromArgs(a, p) },
		func() error { return clipFromArgs(a, p) },
		func() error { return slidingWindowFromArgs(a, p) },
		func() error { return maxInfoFromArgs(a, p) },
		func() error { return singleIntsFromArgs(a, p) },
		func() error { return conversionFromArgs(a, p) },
		func() error { return compressionFromArgs(a, p) },
	} {
		if err = extract(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func inputsFromArgs(layout types.Layout, raw []string) ([]string, error) {
	if len(raw) != layout.Files() {
		return nil, errors.Wrapf(ErrInputCount, "layout %s needs %d read file(s), not %d",
			layout, layout.Files(), len(raw))
	}

	inputs := make([]string, len(raw))

	for i, r := range raw {
		input, err := validate.SequenceFile(r, "read file argument")
		if err != nil {
			return nil, err
		}

		inputs[i] = input
	}

	if err := checkOutputNames(inputs); err != nil {
		return nil, err
	}

	return inputs, nil
}

func threadsFromArgs(a Args, p *Params) error {
	if a.Threads == nil {
		return nil
	}

	var err error

	p.Threads, err = validate.PositiveInteger(*a.Threads, "--threads")

	return err
}

func phredFromArgs(a Args, p *Params) error {
	if a.Phred == nil {
		return nil
	}

	var err error

	p.Phred, err = validate.Phred(*a.Phred, "--phred")

	return err
}

func clipFromArgs(a Args, p *Params) error {
	if a.IlluminaClip == nil {
		return nil
	}

	const location = "--illuminaclip"

	fields, err := validate.Fields(*a.IlluminaClip, location, clipFields)
	if err != nil {
		return err
	}

	clip := &Clip{}

	if clip.AdapterFile, err = validate.AdapterFile(fields[0], "adapter file in "+location); err != nil {
		return err
	}

	for i, field := range []struct {
		name string
		dest *int
	}{
		{"seed mismatches", &clip.SeedMismatches},
		{"palindrome clip threshold", &clip.PalindromeThreshold},
		{"simple clip threshold", &clip.SimpleThreshold},
	} {
		if *field.dest, err = validate.NonNegativeInteger(fields[i+1], field.name+" in "+location); err != nil {
			return err
		}
	}

	p.Clip = clip

	return nil
}

func slidingWindowFromArgs(a Args, p *Params) error {
	if a.SlidingWindow == nil {
		return nil
	}

	const location = "--slidingwindow"

	fields, err := validate.Fields(*a.SlidingWindow, location, slidingWindowFields)
	if err != nil {
		return err
	}

	size, err := validate.NonNegativeInteger(fields[0], "window size in "+location)
	if err != nil {
		return err
	}

	quality, err := validate.NonNegativeInteger(fields[1], "required quality in "+location)
	if err != nil {
		return err
	}

	p.SlidingWindow = &SlidingWindow{WindowSize: size, RequiredQuality: quality}

	return nil
}

func maxInfoFromArgs(a Args, p *Params) error {
	if a.MaxInfo == nil {
		return nil
	}

	const location = "--maxinfo"

	fields, err := validate.Fields(*a.MaxInfo, location, maxInfoFields)
	if err != nil {
		return err
	}

	length, err := validate.NonNegativeInteger(fields[0], "target length in "+location)
	if err != nil {
		return err
	}

	strictness, err := validate.Strictness(fields[1], "strictness in "+location)
	if err != nil {
		return err
	}

	p.MaxInfo = &MaxInfo{TargetLength: length, Strictness: strictness}

	return nil
}

func singleIntsFromArgs(a Args, p *Params) error {
	for _, opt := range []struct {
		flag string
		raw  *string
		dest **int
	}{
		{"--leading", a.Leading, &p.Leading},
		{"--trailing", a.Trailing, &p.Trailing},
		{"--crop", a.Crop, &p.Crop},
		{"--headcrop", a.HeadCrop, &p.HeadCrop},
		{"--minlen", a.MinLen, &p.MinLen},
		{"--avgqual", a.AvgQual, &p.AvgQual},
	} {
		if opt.raw == nil {
			continue
		}

		v, err := validate.Integer(*opt.raw, opt.flag)
		if err != nil {
			return err
		}

		*opt.dest = intPtr(v)
	}

	return nil
}

func conversionFromArgs(a Args, p *Params) error {
	switch {
	case a.ToPhred33 && a.ToPhred64:
		return ErrConversionConflict
	case a.ToPhred33:
		p.Convert = types.ConversionPhred33
	case a.ToPhred64:
		p.Convert = types.ConversionPhred64
	}

	return nil
}

func compressionFromArgs(a Args, p *Params) error {
	if a.Compress == nil {
		return nil
	}

	var err error

	p.Compress, err = validate.Compression(*a.Compress, "--compress")

	return err
}
