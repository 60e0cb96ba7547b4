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

package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/wtsi-hgi/trimmomatic-automation/params"
	"github.com/wtsi-hgi/trimmomatic-automation/trimmomatic"
	"github.com/wtsi-hgi/trimmomatic-automation/types"
)

const (
	userPerms = 0600
	errFake   = Error("fake failure")
)

// fakeRunner records the commands it is asked to run and calls onRun for each.
type fakeRunner struct {
	calls [][]string
	onRun func(call int, args []string) error
}

func (f *fakeRunner) Run(args []string, stderr io.Writer) error {
	call := len(f.calls)
	f.calls = append(f.calls, args)

	fmt.Fprintf(stderr, "stage %d log\n", call+1)

	if f.onRun == nil {
		return nil
	}

	return f.onRun(call, args)
}

func writeFiles(content string, paths ...string) {
	for _, path := range paths {
		err := os.WriteFile(path, []byte(content), userPerms)
		So(err, ShouldBeNil)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	So(err, ShouldBeNil)

	return string(data)
}

func intPtr(n int) *int {
	return &n
}

func TestDriver(t *testing.T) {
	Convey("Given paired-end params needing both stages", t, func() {
		dir := t.TempDir()
		logDir := t.TempDir()

		p := &params.Params{
			Layout:    types.LayoutPE,
			Inputs:    []string{"reads_1.fq.gz", "reads_2.fq.gz"},
			OutputDir: dir,
			Threads:   2,
			Clip:      &params.Clip{AdapterFile: "adapters.fa", SeedMismatches: 2, PalindromeThreshold: 30, SimpleThreshold: 10},
			MinLen:    intPtr(36),
		}
		b := trimmomatic.New(p)
		outputs := b.Outputs()
		temp := b.TempPaths()
		runner := &fakeRunner{}

		d := New(b, Options{Runner: runner, LogDir: logDir})

		Convey("Stage 1 files are chained in to stage 2 and cleaned up", func() {
			runner.onRun = func(call int, _ []string) error {
				switch call {
				case 0:
					writeFiles("step1", outputs.Trimmed...)
					writeFiles("step1", outputs.Singles...)
				case 1:
					for _, path := range temp {
						So(fileExists(path), ShouldBeTrue)
						So(readFile(path), ShouldEqual, "step1")
					}

					for _, path := range append(outputs.Trimmed, outputs.Singles...) {
						So(fileExists(path), ShouldBeFalse)
					}

					writeFiles("step2", outputs.Trimmed...)
					writeFiles("step2", outputs.Singles...)
				}

				return nil
			}

			result, err := d.Run()
			So(err, ShouldBeNil)
			So(runner.calls, ShouldHaveLength, 2)
			So(result.Stages, ShouldHaveLength, 2)
			So(result.Stages[0].Name, ShouldEqual, trimmomatic.StageAdapter)
			So(result.Stages[1].Name, ShouldEqual, trimmomatic.StageQuality)
			So(result.Stages[1].Inputs, ShouldResemble, temp)
			So(result.Outputs, ShouldResemble, outputs)

			So(runner.calls[0], ShouldContain, "ILLUMINACLIP:adapters.fa:2:30:10")
			So(runner.calls[1], ShouldContain, temp[0])
			So(runner.calls[1], ShouldContain, "MINLEN:36")

			for _, path := range temp {
				So(fileExists(path), ShouldBeFalse)
			}

			for _, path := range outputs.Trimmed {
				So(readFile(path), ShouldEqual, "step2")
			}

			So(d.Ledger().Chained, ShouldBeTrue)
			So(d.Ledger().Singles, ShouldBeNil)

			So(readFile(filepath.Join(logDir, AdapterLog)), ShouldEqual, "stage 1 log\n")
			So(readFile(filepath.Join(logDir, QualityLog)), ShouldEqual, "stage 2 log\n")
		})

		Convey("A failing stage 1 stops the run", func() {
			runner.onRun = func(_ int, _ []string) error {
				return errFake
			}

			result, err := d.Run()
			So(errors.Cause(err), ShouldEqual, ErrStageFailed)
			So(err.Error(), ShouldContainSubstring, errFake.Error())
			So(err.Error(), ShouldContainSubstring, trimmomatic.StageAdapter)
			So(result, ShouldBeNil)
			So(runner.calls, ShouldHaveLength, 1)
		})

		Convey("A failing stage 2 is reported", func() {
			runner.onRun = func(call int, _ []string) error {
				if call == 0 {
					writeFiles("step1", outputs.Trimmed...)
					writeFiles("step1", outputs.Singles...)

					return nil
				}

				return errFake
			}

			_, err := d.Run()
			So(errors.Cause(err), ShouldEqual, ErrStageFailed)
			So(err.Error(), ShouldContainSubstring, trimmomatic.StageQuality)
		})

		Convey("A missing stage 1 output fails the chaining", func() {
			_, err := d.Run()
			So(err, ShouldNotBeNil)
			So(runner.calls, ShouldHaveLength, 1)
		})

		Convey("A dry run prints what would happen without doing it", func() {
			out := &bytes.Buffer{}
			d = New(b, Options{Runner: runner, LogDir: logDir, DryRun: true, Out: out})

			result, err := d.Run()
			So(err, ShouldBeNil)
			So(result.Stages, ShouldHaveLength, 2)
			So(runner.calls, ShouldBeEmpty)
			So(fileExists(filepath.Join(logDir, AdapterLog)), ShouldBeFalse)

			printed := out.String()
			So(printed, ShouldContainSubstring, result.Stages[0].String())
			So(printed, ShouldContainSubstring, result.Stages[1].String())
			So(printed, ShouldContainSubstring, "mv "+outputs.Trimmed[0]+" "+temp[0])
			So(printed, ShouldContainSubstring, "rm "+outputs.Singles[1])
			So(printed, ShouldContainSubstring, "rm "+temp[1])
		})
	})

	Convey("Given single-end params", t, func() {
		dir := t.TempDir()
		p := &params.Params{
			Layout:    types.LayoutSE,
			Inputs:    []string{"reads.fastq"},
			OutputDir: dir,
			Threads:   1,
		}
		b := trimmomatic.New(p)
		runner := &fakeRunner{}
		d := New(b, Options{Runner: runner, LogDir: t.TempDir()})

		Convey("Nothing runs when no trimming is requested", func() {
			result, err := d.Run()
			So(err, ShouldBeNil)
			So(result.Stages, ShouldBeEmpty)
			So(runner.calls, ShouldBeEmpty)
		})

		Convey("Only the quality stage runs when there's no clip", func() {
			p.SlidingWindow = &params.SlidingWindow{WindowSize: 10, RequiredQuality: 30}

			result, err := d.Run()
			So(err, ShouldBeNil)
			So(result.Stages, ShouldHaveLength, 1)
			So(runner.calls, ShouldHaveLength, 1)
			So(runner.calls[0], ShouldContain, "reads.fastq")
			So(runner.calls[0], ShouldContain, "SLIDINGWINDOW:10:30")
		})

		Convey("Only the adapter stage runs when there's no quality trimming", func() {
			p.Clip = &params.Clip{AdapterFile: "adapters.fa"}

			result, err := d.Run()
			So(err, ShouldBeNil)
			So(result.Stages, ShouldHaveLength, 1)
			So(result.Stages[0].Name, ShouldEqual, trimmomatic.StageAdapter)
			So(result.Outputs.Trimmed, ShouldResemble, []string{filepath.Join(dir, "trimmed_reads.fastq")})
			So(d.Ledger().Chained, ShouldBeFalse)
		})

		Convey("Both stages chain a single file, with no singles to delete", func() {
			p.Clip = &params.Clip{AdapterFile: "adapters.fa"}
			p.Leading = intPtr(3)
			trimmed := filepath.Join(dir, "trimmed_reads.fastq")
			temp := filepath.Join(dir, "tmp_reads.fastq")

			runner.onRun = func(call int, args []string) error {
				if call == 0 {
					writeFiles("step1", trimmed)
				} else {
					So(args, ShouldContain, temp)
					So(readFile(temp), ShouldEqual, "step1")
					writeFiles("step2", trimmed)
				}

				return nil
			}

			_, err := d.Run()
			So(err, ShouldBeNil)
			So(fileExists(temp), ShouldBeFalse)
			So(readFile(trimmed), ShouldEqual, "step2")
		})
	})
}

func TestMoveFile(t *testing.T) {
	Convey("moveFile replaces the destination", t, func() {
		dir := t.TempDir()
		src := filepath.Join(dir, "src")
		dst := filepath.Join(dir, "dst")
		writeFiles("new", src)
		writeFiles("old", dst)

		err := moveFile(src, dst)
		So(err, ShouldBeNil)
		So(fileExists(src), ShouldBeFalse)
		So(readFile(dst), ShouldEqual, "new")

		err = moveFile(src, dst)
		So(err, ShouldNotBeNil)
	})

	Convey("copyAndRemove copies then deletes the source", t, func() {
		dir := t.TempDir()
		src := filepath.Join(dir, "src")
		dst := filepath.Join(dir, "dst")
		writeFiles("content", src)

		err := copyAndRemove(src, dst)
		So(err, ShouldBeNil)
		So(fileExists(src), ShouldBeFalse)
		So(readFile(dst), ShouldEqual, "content")
	})
}
