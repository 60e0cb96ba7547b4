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
	"encoding/xml"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/wtsi-hgi/trimmomatic-automation/types"
	"github.com/wtsi-hgi/trimmomatic-automation/validate"
)

const (
	tagInputOutput = "input-output"
	tagLayout      = "layout"
	tagSingleEnds  = "single-ends"
	tagPairedEnds  = "paired-ends"
	tagInput       = "input"
	tagWorkDir     = "working-directory"
	tagSkip        = "skip"
	tagParameter   = "parameter"
	tagValue       = "value"
	attrName       = "name"

	nameTrimmomatic = "trimmomatic"
	nameAdapter     = "adapter-trimming"
	nameQuality     = "quality-trimming"
	nameUseful      = "useful-parameters"
	nameRead1       = "read 1"
	nameRead2       = "read 2"
	nameClip        = "illuminaclip"

	rootChildren        = 2
	inputOutputChildren = 4
	categoryChildren    = 3
	adapterChildren     = 2
	qualityChildren     = 9
	usefulChildren      = 4
)

// Node is an element of an XML document, with its attributes, text and child
// elements.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*Node    `xml:",any"`
}

// Tag returns the element's tag name.
func (n *Node) Tag() string {
	return n.XMLName.Local
}

// Attr returns the value of the given attribute, or blank if not set.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}

// Name returns the value of the element's name attribute.
func (n *Node) Name() string {
	return n.Attr(attrName)
}

// Find returns the first child element with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, child := range n.Children {
		if child.Tag() == tag {
			return child
		}
	}

	return nil
}

// FindAll returns all child elements with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var found []*Node

	for _, child := range n.Children {
		if child.Tag() == tag {
			found = append(found, child)
		}
	}

	return found
}

func (n *Node) checkChildren(want int, location string) error {
	if len(n.Children) != want {
		return errors.Wrapf(ErrChildCount, "%s must contain exactly %d elements, not %d",
			location, want, len(n.Children))
	}

	return nil
}

func (n *Node) mustFind(tag, location string) (*Node, error) {
	child := n.Find(tag)
	if child == nil {
		return nil, errors.Wrapf(ErrMissingElement, "%s has no <%s>", location, tag)
	}

	return child, nil
}

// text returns the text of the child element with the given tag.
func (n *Node) text(tag, location string) (string, error) {
	child, err := n.mustFind(tag, location)
	if err != nil {
		return "", err
	}

	return child.Text, nil
}

// skipped returns true if the child skip element says "yes".
func (n *Node) skipped(location string) (bool, error) {
	text, err := n.text(tagSkip, location)
	if err != nil {
		return false, err
	}

	skip, err := validate.YesNo(text, "skip for "+location)

	return skip == validate.Yes, err
}

// parameters returns n's parameter children, rejecting any other element
// (apart from one skip element if allowSkip) and repeated names.
func (n *Node) parameters(location string, allowSkip bool) ([]*Node, error) {
	var (
		params  []*Node
		skipped bool
	)

	seen := make(map[string]bool)

	for _, child := range n.Children {
		switch {
		case allowSkip && !skipped && child.Tag() == tagSkip:
			skipped = true
		case child.Tag() != tagParameter:
			return nil, errors.Wrapf(ErrUnknownName, "%s element <%s>", location, child.Tag())
		case seen[child.Name()]:
			return nil, errors.Wrapf(ErrUnknownName, "%s parameter %q given more than once", location, child.Name())
		default:
			seen[child.Name()] = true

			params = append(params, child)
		}
	}

	return params, nil
}

// FromXMLFile parses the XML configuration file at the given path.
func FromXMLFile(path string) (*Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return FromXML(f)
}

// FromXML parses an XML configuration. The document must have exactly the
// shape of our Template(): every expected element present, no others, and
// parameter names unchanged.
func FromXML(r io.Reader) (*Params, error) {
	root := &Node{}
	if err := xml.NewDecoder(r).Decode(root); err != nil {
		return nil, errors.Wrap(err, "invalid XML configuration")
	}

	inOut, trimmo, err := separateSections(root)
	if err != nil {
		return nil, err
	}

	adapter, quality, useful, err := separateCategories(trimmo)
	if err != nil {
		return nil, err
	}

	p := &Params{Threads: DefaultThreads}

	for _, extract := range []func() error{
		func() error { return inputOutputFromXML(inOut, p) },
		func() error { return adapterFromXML(adapter, p) },
		func() error { return qualityFromXML(quality, p) },
		func() error { return usefulFromXML(useful, p) },
	} {
		if err = extract(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func separateSections(root *Node) (*Node, *Node, error) {
	if err := root.checkChildren(rootChildren, "the configuration"); err != nil {
		return nil, nil, err
	}

	var inOut, trimmo *Node

	for _, child := range root.Children {
		switch {
		case child.Tag() == tagInputOutput:
			inOut = child
		case child.Name() == nameTrimmomatic:
			trimmo = child
		default:
			return nil, nil, errors.Wrapf(ErrUnknownName,
				"section <%s name=%q>; expected %s and %s", child.Tag(), child.Name(),
				tagInputOutput, nameTrimmomatic)
		}
	}

	if inOut == nil || trimmo == nil {
		return nil, nil, errors.Wrapf(ErrMissingElement,
			"the configuration needs one %s and one %s section", tagInputOutput, nameTrimmomatic)
	}

	return inOut, trimmo, nil
}

func separateCategories(trimmo *Node) (adapter, quality, useful *Node, err error) {
	if err = trimmo.checkChildren(categoryChildren, nameTrimmomatic); err != nil {
		return nil, nil, nil, err
	}

	for _, category := range trimmo.Children {
		switch category.Name() {
		case nameAdapter:
			adapter = category
		case nameQuality:
			quality = category
		case nameUseful:
			useful = category
		default:
			return nil, nil, nil, errors.Wrapf(ErrUnknownName, "%s category %q", nameTrimmomatic, category.Name())
		}
	}

	if adapter == nil || quality == nil || useful == nil {
		return nil, nil, nil, errors.Wrapf(ErrMissingElement,
			"%s needs the categories %s, %s and %s", nameTrimmomatic, nameAdapter, nameQuality, nameUseful)
	}

	return adapter, quality, useful, nil
}

func inputOutputFromXML(inOut *Node, p *Params) error {
	if err := inOut.checkChildren(inputOutputChildren, tagInputOutput); err != nil {
		return err
	}

	text, err := inOut.text(tagLayout, tagInputOutput)
	if err != nil {
		return err
	}

	p.Layout, err = validate.Layout(text, tagLayout+" in "+tagInputOutput)
	if err != nil {
		return err
	}

	if p.Layout == types.LayoutSE {
		p.Inputs, err = singleEndInput(inOut)
	} else {
		p.Inputs, err = pairedEndInputs(inOut)
	}

	if err != nil {
		return err
	}

	text, err = inOut.text(tagWorkDir, tagInputOutput)
	if err != nil {
		return err
	}

	p.OutputDir, err = validate.NotEmpty(text, tagWorkDir+" in "+tagInputOutput)

	return err
}

func singleEndInput(inOut *Node) ([]string, error) {
	se, err := inOut.mustFind(tagSingleEnds, tagInputOutput)
	if err != nil {
		return nil, err
	}

	text, err := se.text(tagInput, tagSingleEnds)
	if err != nil {
		return nil, err
	}

	input, err := validate.SequenceFile(text, "single-end read file")
	if err != nil {
		return nil, err
	}

	return []string{input}, nil
}

func pairedEndInputs(inOut *Node) ([]string, error) {
	pe, err := inOut.mustFind(tagPairedEnds, tagInputOutput)
	if err != nil {
		return nil, err
	}

	var read1, read2 string

	for _, input := range pe.FindAll(tagInput) {
		switch input.Name() {
		case nameRead1:
			read1, err = validate.SequenceFile(input.Text, "paired-end read 1 file")
		case nameRead2:
			read2, err = validate.SequenceFile(input.Text, "paired-end read 2 file")
		default:
			err = errors.Wrapf(ErrUnknownName, "%s input %q", tagPairedEnds, input.Name())
		}

		if err != nil {
			return nil, err
		}
	}

	if read1 == "" || read2 == "" {
		return nil, errors.Wrapf(ErrMissingElement, "%s needs inputs named %q and %q",
			tagPairedEnds, nameRead1, nameRead2)
	}

	inputs := []string{read1, read2}
	if err = checkOutputNames(inputs); err != nil {
		return nil, err
	}

	return inputs, nil
}

func adapterFromXML(adapter *Node, p *Params) error {
	if err := adapter.checkChildren(adapterChildren, nameAdapter); err != nil {
		return err
	}

	skip, err := adapter.skipped(nameAdapter)
	if err != nil || skip {
		return err
	}

	param, err := adapter.mustFind(tagParameter, nameAdapter)
	if err != nil {
		return err
	}

	if param.Name() != nameClip {
		return errors.Wrapf(ErrUnknownName, "%s parameter %q; expected %q", nameAdapter, param.Name(), nameClip)
	}

	p.Clip, err = clipFromXML(param)

	return err
}

func clipFromXML(param *Node) (*Clip, error) {
	const location = nameClip + " in " + nameAdapter

	clip := &Clip{Optional: &ClipOptional{}}

	text, err := param.text("adapters-fasta-file", location)
	if err != nil {
		return nil, err
	}

	if clip.AdapterFile, err = validate.AdapterFile(text, "adapters-fasta-file in "+location); err != nil {
		return nil, err
	}

	for _, field := range []struct {
		tag  string
		dest *int
	}{
		{"seed-mismatches", &clip.SeedMismatches},
		{"palindrome-clip-threshold", &clip.PalindromeThreshold},
		{"simple-clip-threshold", &clip.SimpleThreshold},
	} {
		if *field.dest, err = nonNegativeChild(param, field.tag, location); err != nil {
			return nil, err
		}
	}

	clip.Optional.MinAdapterLength, err = minAdapterLength(param, location)
	if err != nil {
		return nil, err
	}

	clip.Optional.KeepBothReads, err = keepBothReads(param, location)

	return clip, err
}

func nonNegativeChild(n *Node, tag, location string) (int, error) {
	text, err := n.text(tag, location)
	if err != nil {
		return 0, err
	}

	return validate.NonNegativeInteger(text, tag+" in "+location)
}

func integerChild(n *Node, tag, location string) (int, error) {
	text, err := n.text(tag, location)
	if err != nil {
		return 0, err
	}

	return validate.Integer(text, tag+" in "+location)
}

func minAdapterLength(param *Node, location string) (int, error) {
	const tag = "min-adapter-length"

	n, err := param.mustFind(tag, location)
	if err != nil {
		return 0, err
	}

	skip, err := n.skipped(tag + " in " + location)
	if err != nil {
		return 0, err
	}

	if skip {
		return DefaultMinAdapterLength, nil
	}

	return nonNegativeChild(n, tagValue, tag+" in "+location)
}

func keepBothReads(param *Node, location string) (bool, error) {
	const tag = "keep-both-reads"

	n, err := param.mustFind(tag, location)
	if err != nil {
		return false, err
	}

	skip, err := n.skipped(tag + " in " + location)
	if err != nil {
		return false, err
	}

	if skip {
		return DefaultKeepBothReads, nil
	}

	text, err := n.text(tagValue, tag+" in "+location)
	if err != nil {
		return false, err
	}

	keep, err := validate.TrueFalse(text, tagValue+" of "+tag+" in "+location)

	return keep == validate.True, err
}

// qualityExtractors know how to extract each quality trimming parameter.
var qualityExtractors = map[string]func(*Node, *Params, string) error{ //nolint:gochecknoglobals
	"sliding-window": func(n *Node, p *Params, location string) error {
		size, err := nonNegativeChild(n, "window-length", location)
		if err != nil {
			return err
		}

		quality, err := nonNegativeChild(n, "required-quality", location)
		if err != nil {
			return err
		}

		p.SlidingWindow = &SlidingWindow{WindowSize: size, RequiredQuality: quality}

		return nil
	},
	"maxinfo": func(n *Node, p *Params, location string) error {
		length, err := nonNegativeChild(n, "target-length", location)
		if err != nil {
			return err
		}

		text, err := n.text("strictness", location)
		if err != nil {
			return err
		}

		strictness, err := validate.Strictness(text, "strictness in "+location)
		if err != nil {
			return err
		}

		p.MaxInfo = &MaxInfo{TargetLength: length, Strictness: strictness}

		return nil
	},
	"leading":         intExtractor("required-quality", func(p *Params, v int) { p.Leading = intPtr(v) }),
	"trailing":        intExtractor("required-quality", func(p *Params, v int) { p.Trailing = intPtr(v) }),
	"crop":            intExtractor("length", func(p *Params, v int) { p.Crop = intPtr(v) }),
	"headcrop":        intExtractor("length", func(p *Params, v int) { p.HeadCrop = intPtr(v) }),
	"minlen":          intExtractor("length", func(p *Params, v int) { p.MinLen = intPtr(v) }),
	"average-quality": intExtractor("required-quality", func(p *Params, v int) { p.AvgQual = intPtr(v) }),
}

func intExtractor(tag string, set func(*Params, int)) func(*Node, *Params, string) error {
	return func(n *Node, p *Params, location string) error {
		v, err := integerChild(n, tag, location)
		if err != nil {
			return err
		}

		set(p, v)

		return nil
	}
}

func qualityFromXML(quality *Node, p *Params) error {
	if err := quality.checkChildren(qualityChildren, nameQuality); err != nil {
		return err
	}

	params, err := quality.parameters(nameQuality, true)
	if err != nil {
		return err
	}

	skip, err := quality.skipped(nameQuality)
	if err != nil || skip {
		return err
	}

	for _, param := range params {
		extract, ok := qualityExtractors[param.Name()]
		if !ok {
			return errors.Wrapf(ErrUnknownName, "%s parameter %q", nameQuality, param.Name())
		}

		location := param.Name() + " in " + nameQuality

		skip, err = param.skipped(location)
		if err != nil {
			return err
		}

		if skip {
			continue
		}

		if err = extract(param, p, location); err != nil {
			return err
		}
	}

	return nil
}

func usefulFromXML(useful *Node, p *Params) error {
	if err := useful.checkChildren(usefulChildren, nameUseful); err != nil {
		return err
	}

	params, err := useful.parameters(nameUseful, false)
	if err != nil {
		return err
	}

	for _, param := range params {
		location := param.Name() + " in " + nameUseful

		switch param.Name() {
		case "singleton-reads":
			err = singletonsFromXML(param, p, location)
		case "convert-to-phred":
			err = conversionFromXML(param, p, location)
		case "threads":
			err = threadsFromXML(param, p, location)
		case "compressed-output":
			err = compressionFromXML(param, p, location)
		default:
			err = errors.Wrapf(ErrUnknownName, "%s parameter %q", nameUseful, param.Name())
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func singletonsFromXML(param *Node, p *Params, location string) error {
	text, err := param.text("show", location)
	if err != nil {
		return err
	}

	show, err := validate.YesNo(text, "show for "+location)
	p.ShowSingletons = show == validate.Yes

	return err
}

func conversionFromXML(param *Node, p *Params, location string) error {
	skip, err := param.skipped(location)
	if err != nil || skip {
		return err
	}

	text, err := param.text("format", location)
	if err != nil {
		return err
	}

	phred, err := validate.Phred(text, "format in "+location)
	if err != nil {
		return err
	}

	p.Convert, err = types.PhredToConversion(phred)

	return err
}

func threadsFromXML(param *Node, p *Params, location string) error {
	text, err := param.text("number", location)
	if err != nil {
		return err
	}

	p.Threads, err = validate.PositiveInteger(text, "number in "+location)

	return err
}

func compressionFromXML(param *Node, p *Params, location string) error {
	skip, err := param.skipped(location)
	if err != nil || skip {
		return err
	}

	text, err := param.text("format", location)
	if err != nil {
		return err
	}

	p.Compress, err = validate.Compression(text, "format in "+location)

	return err
}
