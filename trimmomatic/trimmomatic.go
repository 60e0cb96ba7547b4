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

// package trimmomatic builds the command lines for running Trimmomatic's
// adapter and quality trimming stages.

package trimmomatic

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wtsi-hgi/trimmomatic-automation/params"
	"github.com/wtsi-hgi/trimmomatic-automation/types"
	"github.com/wtsi-hgi/trimmomatic-automation/validate"
)

const (
	DefaultJava = "java"
	DefaultJar  = "trimmomatic-0.33.jar"

	StageAdapter = "adapter"
	StageQuality = "quality"

	trimmedPrefix   = "trimmed_"
	singlePrefix    = "single_"
	tempPrefix      = "tmp_"
	outputExtension = ".fastq"
	jarFlag         = "-jar"
	threadsFlag     = "-threads"
)

// Files are the output files of a stage. Singles are only produced for
// paired-end data.
type Files struct {
	Trimmed []string
	Singles []string
}

// Ledger keeps track of the files the adapter stage creates, so that the
// quality stage can use them as input and they can be cleaned up afterwards.
type Ledger struct {
	Inputs  []string
	Trimmed []string
	Singles []string

	// Chained is true once Trimmed have been moved to become the quality
	// stage's inputs.
	Chained bool
}

// Chain records that the adapter stage's trimmed files now live at the given
// temporary paths, and that its singles files are gone.
func (l *Ledger) Chain(temp []string) {
	l.Trimmed = temp
	l.Singles = nil
	l.Chained = true
}

// Stage is a single Trimmomatic invocation.
type Stage struct {
	Name    string
	Args    []string
	Inputs  []string
	Outputs Files
}

// String returns the command line, for display purposes.
func (s *Stage) String() string {
	return strings.Join(s.Args, " ")
}

// Builder creates Stages from Params. Java and Jar default to DefaultJava and
// DefaultJar, but can be changed before building stages.
type Builder struct {
	Java string
	Jar  string

	params *params.Params
}

// New returns a Builder for the given Params.
func New(p *params.Params) *Builder {
	return &Builder{
		Java:   DefaultJava,
		Jar:    DefaultJar,
		params: p,
	}
}

// Params returns the Params this Builder was made with.
func (b *Builder) Params() *params.Params {
	return b.params
}

// Outputs returns the files both stages write to. They are named after the
// original input files, so the quality stage would overwrite the adapter
// stage's files if they weren't moved first.
func (b *Builder) Outputs() Files {
	var files Files

	for _, input := range b.params.Inputs {
		files.Trimmed = append(files.Trimmed, b.outputPath(trimmedPrefix, input))

		if b.params.Layout == types.LayoutPE {
			files.Singles = append(files.Singles, b.outputPath(singlePrefix, input))
		}
	}

	return files
}

func (b *Builder) outputPath(prefix, input string) string {
	return filepath.Join(b.params.OutputDir,
		prefix+validate.SequenceFilePrefix(input)+outputExtension+b.params.Compress.Extension())
}

// TempPaths returns the paths the adapter stage's trimmed files should be
// moved to before being used as input to the quality stage.
func (b *Builder) TempPaths() []string {
	paths := make([]string, len(b.params.Inputs))

	for i, input := range b.params.Inputs {
		paths[i] = b.outputPath(tempPrefix, input)
	}

	return paths
}

// AdapterStage returns the ILLUMINACLIP stage, recording its input and output
// files in the ledger. Returns nil if no adapter trimming was requested.
func (b *Builder) AdapterStage(l *Ledger) *Stage {
	if b.params.Clip == nil {
		return nil
	}

	stage := b.stage(StageAdapter, b.params.Inputs, []string{"ILLUMINACLIP:" + b.params.Clip.String()})

	l.Inputs = stage.Inputs
	l.Trimmed = stage.Outputs.Trimmed
	l.Singles = stage.Outputs.Singles
	l.Chained = false

	return stage
}

// QualityStage returns the quality trimming stage. Its inputs are the
// ledger's trimmed files if they have been chained, otherwise the original
// inputs. Returns nil if no quality trimming parameter was set.
func (b *Builder) QualityStage(l *Ledger) *Stage {
	if !b.params.HasQuality() {
		return nil
	}

	inputs := b.params.Inputs
	if l != nil && l.Chained {
		inputs = l.Trimmed
	}

	return b.stage(StageQuality, inputs, b.qualityDirectives())
}

func (b *Builder) qualityDirectives() []string {
	p := b.params

	var directives []string

	addInt := func(name string, v *int) {
		if v != nil {
			directives = append(directives, name+":"+strconv.Itoa(*v))
		}
	}

	addInt("CROP", p.Crop)
	addInt("HEADCROP", p.HeadCrop)
	addInt("LEADING", p.Leading)
	addInt("TRAILING", p.Trailing)

	if p.SlidingWindow != nil {
		directives = append(directives, "SLIDINGWINDOW:"+p.SlidingWindow.String())
	}

	if p.MaxInfo != nil {
		directives = append(directives, "MAXINFO:"+p.MaxInfo.String())
	}

	addInt("MINLEN", p.MinLen)
	addInt("AVGQUAL", p.AvgQual)

	return directives
}

func (b *Builder) stage(name string, inputs, directives []string) *Stage {
	outputs := b.Outputs()

	args := []string{
		b.Java, jarFlag, b.Jar,
		string(b.params.Layout),
		threadsFlag, strconv.Itoa(b.params.Threads),
	}

	args = append(args, inputs...)

	for i, trimmed := range outputs.Trimmed {
		args = append(args, trimmed)

		if i < len(outputs.Singles) {
			args = append(args, outputs.Singles[i])
		}
	}

	args = append(args, directives...)

	if b.params.Convert != types.ConversionNone {
		args = append(args, string(b.params.Convert))
	}

	return &Stage{
		Name:    name,
		Args:    args,
		Inputs:  inputs,
		Outputs: outputs,
	}
}
