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

package validate

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/wtsi-hgi/trimmomatic-automation/types"
)

const loc = "test location"

func TestNotEmpty(t *testing.T) {
	Convey("NotEmpty trims whitespace and rejects blank values", t, func() {
		v, err := NotEmpty("  foo \n", loc)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "foo")

		_, err = NotEmpty("", loc)
		So(errors.Cause(err), ShouldEqual, ErrEmpty)
		So(err.Error(), ShouldContainSubstring, loc)

		_, err = NotEmpty(" \t\n", loc)
		So(errors.Cause(err), ShouldEqual, ErrEmpty)
	})
}

func TestEnums(t *testing.T) {
	Convey("Layout is normalised to upper case", t, func() {
		l, err := Layout(" pe ", loc)
		So(err, ShouldBeNil)
		So(l, ShouldEqual, types.LayoutPE)

		_, err = Layout("paired", loc)
		So(errors.Cause(err), ShouldEqual, ErrLayout)
		So(err.Error(), ShouldContainSubstring, `"paired"`)

		_, err = Layout("", loc)
		So(errors.Cause(err), ShouldEqual, ErrEmpty)
	})

	Convey("YesNo and TrueFalse are normalised to lower case", t, func() {
		v, err := YesNo("YES", loc)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, Yes)

		v, err = YesNo("No", loc)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, No)

		_, err = YesNo("true", loc)
		So(errors.Cause(err), ShouldEqual, ErrYesNo)

		v, err = TrueFalse("False", loc)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, False)

		_, err = TrueFalse("yes", loc)
		So(errors.Cause(err), ShouldEqual, ErrTrueFalse)

		_, err = TrueFalse(" ", loc)
		So(errors.Cause(err), ShouldEqual, ErrEmpty)
	})

	Convey("Compression accepts gz and bz2 only", t, func() {
		c, err := Compression("GZ", loc)
		So(err, ShouldBeNil)
		So(c, ShouldEqual, types.CompressionGzip)

		c, err = Compression("bz2", loc)
		So(err, ShouldBeNil)
		So(c, ShouldEqual, types.CompressionBzip2)

		_, err = Compression("xz", loc)
		So(errors.Cause(err), ShouldEqual, ErrCompression)
	})

	Convey("Phred accepts 33 and 64 only", t, func() {
		p, err := Phred("64", loc)
		So(err, ShouldBeNil)
		So(p, ShouldEqual, 64)

		_, err = Phred("32", loc)
		So(errors.Cause(err), ShouldEqual, ErrPhred)

		_, err = Phred("phred33", loc)
		So(errors.Cause(err), ShouldEqual, ErrInteger)
	})
}

func TestNumbers(t *testing.T) {
	Convey("Integer parses base 10 numbers, including negative ones", t, func() {
		n, err := Integer(" 010 ", loc)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 10)

		n, err = Integer("-5", loc)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, -5)

		_, err = Integer("5.5", loc)
		So(errors.Cause(err), ShouldEqual, ErrInteger)

		_, err = Integer("ten", loc)
		So(errors.Cause(err), ShouldEqual, ErrInteger)
	})

	Convey("NonNegativeInteger and PositiveInteger add range checks", t, func() {
		n, err := NonNegativeInteger("0", loc)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 0)

		_, err = NonNegativeInteger("-1", loc)
		So(errors.Cause(err), ShouldEqual, ErrNegative)

		n, err = PositiveInteger("4", loc)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 4)

		_, err = PositiveInteger("0", loc)
		So(errors.Cause(err), ShouldEqual, ErrNotPositive)
	})

	Convey("Float parses decimals", t, func() {
		f, err := Float("0.25", loc)
		So(err, ShouldBeNil)
		So(f, ShouldEqual, 0.25)

		_, err = Float("a quarter", loc)
		So(errors.Cause(err), ShouldEqual, ErrFloat)
	})

	Convey("Strictness must lie in [0, 1]", t, func() {
		for _, ok := range []string{"0", "1", "0.5", "1.0", "0.0"} {
			_, err := Strictness(ok, loc)
			So(err, ShouldBeNil)
		}

		for _, bad := range []string{"-0.01", "1.01", "2", "NaN", "nan", "Inf", "-Inf"} {
			_, err := Strictness(bad, loc)
			So(errors.Cause(err), ShouldEqual, ErrStrictness)
		}

		_, err := Strictness("strict", loc)
		So(errors.Cause(err), ShouldEqual, ErrFloat)
	})
}

func TestFiles(t *testing.T) {
	Convey("SequenceFile accepts plain and compressed fastq extensions", t, func() {
		for _, ok := range []string{
			"reads.fastq", "reads.fq", "reads.fastq.gz", "reads.fq.gz",
			"reads.fastq.bz2", "/data/reads.fq.bz2",
		} {
			v, err := SequenceFile(ok, loc)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, ok)
		}

		for _, bad := range []string{"sample.bam", "reads.gz", "reads.txt.gz", "reads.fastq.zip", "reads"} {
			_, err := SequenceFile(bad, loc)
			So(errors.Cause(err), ShouldEqual, ErrSequenceExtension)
		}

		_, err := SequenceFile("", loc)
		So(errors.Cause(err), ShouldEqual, ErrEmpty)
	})

	Convey("SequenceFilePrefix strips one or two levels of extension", t, func() {
		So(SequenceFilePrefix("reads.fq.bz2"), ShouldEqual, "reads")
		So(SequenceFilePrefix("reads.fastq"), ShouldEqual, "reads")
		So(SequenceFilePrefix("/data/run.1/sample_1.fastq.gz"), ShouldEqual, "sample_1")
		So(SequenceFilePrefix("other.txt"), ShouldEqual, "other")
	})

	Convey("AdapterFile accepts fasta extensions only", t, func() {
		v, err := AdapterFile(" adapters.fa ", loc)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "adapters.fa")

		_, err = AdapterFile("TruSeq3-PE.fasta", loc)
		So(err, ShouldBeNil)

		_, err = AdapterFile("adapters.txt", loc)
		So(errors.Cause(err), ShouldEqual, ErrAdapterExtension)
	})
}

func TestFields(t *testing.T) {
	Convey("Fields splits on colons and checks the count", t, func() {
		f, err := Fields("10:30", loc, 2)
		So(err, ShouldBeNil)
		So(f, ShouldResemble, []string{"10", "30"})

		_, err = Fields("adapters.fa:2:30", loc, 4)
		So(errors.Cause(err), ShouldEqual, ErrFieldCount)
		So(err.Error(), ShouldContainSubstring, "4 fields")

		_, err = Fields("", loc, 2)
		So(errors.Cause(err), ShouldEqual, ErrEmpty)
	})
}
