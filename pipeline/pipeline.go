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

// package pipeline runs the adapter and quality trimming stages in order,
// chaining the files of the first in to the second.

package pipeline

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/wtsi-hgi/trimmomatic-automation/trimmomatic"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrStageFailed = Error("trimmomatic stage failed")

	AdapterLog = "output_file_step1.out"
	QualityLog = "output_file_step2.out"
)

// Runner runs a command line, writing the command's STDERR to the given
// writer, and returns an error if the command does not exit 0.
type Runner interface {
	Run(args []string, stderr io.Writer) error
}

// ExecRunner is a Runner that executes commands directly, without a shell.
type ExecRunner struct {
	Stdout io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(args []string, stderr io.Writer) error {
	cmd := exec.Command(args[0], args[1:]...) //nolint:gosec
	cmd.Stdout = r.Stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

// Options configure a Driver. Unset options get defaults: an ExecRunner
// writing to STDOUT, the current directory for stage logs, a logger that
// discards everything and STDOUT for dry-run output.
type Options struct {
	Runner Runner
	LogDir string
	Logger log15.Logger
	DryRun bool
	Out    io.Writer
}

// Result describes what a Driver ran.
type Result struct {
	Stages  []*trimmomatic.Stage
	Outputs trimmomatic.Files
}

// Driver runs the stages a Builder creates.
type Driver struct {
	builder *trimmomatic.Builder
	opts    Options
	ledger  *trimmomatic.Ledger
	log     log15.Logger
}

// New returns a Driver that will run the given Builder's stages.
func New(b *trimmomatic.Builder, opts Options) *Driver {
	if opts.Runner == nil {
		opts.Runner = ExecRunner{Stdout: os.Stdout}
	}

	if opts.LogDir == "" {
		opts.LogDir = "."
	}

	if opts.Logger == nil {
		opts.Logger = log15.New()
		opts.Logger.SetHandler(log15.DiscardHandler())
	}

	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	return &Driver{
		builder: b,
		opts:    opts,
		ledger:  &trimmomatic.Ledger{},
		log:     opts.Logger,
	}
}

// Ledger returns the files the Driver is keeping track of.
func (d *Driver) Ledger() *trimmomatic.Ledger {
	return d.ledger
}

// Run runs the adapter stage if a clip was requested, then the quality stage
// if any quality parameter was set. When both run, the adapter stage's trimmed
// files are moved to temporary paths to become the quality stage's input, its
// singles files are deleted, and the temporary files are deleted once the
// quality stage completes.
//
// If neither stage is needed, nothing is run and the Result has no Stages.
func (d *Driver) Run() (*Result, error) {
	result := &Result{}

	adapter := d.builder.AdapterStage(d.ledger)
	if adapter != nil {
		if err := d.runStage(adapter, AdapterLog); err != nil {
			return nil, err
		}

		result.add(adapter)
	}

	if !d.builder.Params().HasQuality() {
		if adapter == nil {
			d.log.Warn("no adapter or quality trimming parameters given; nothing to do")
		}

		return result, nil
	}

	if adapter != nil {
		if err := d.chain(); err != nil {
			return nil, err
		}
	}

	quality := d.builder.QualityStage(d.ledger)
	if err := d.runStage(quality, QualityLog); err != nil {
		return nil, err
	}

	result.add(quality)

	if adapter != nil {
		if err := d.removeFiles(d.ledger.Trimmed); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *Result) add(stage *trimmomatic.Stage) {
	r.Stages = append(r.Stages, stage)
	r.Outputs = stage.Outputs
}

func (d *Driver) runStage(stage *trimmomatic.Stage, logName string) error {
	logPath := filepath.Join(d.opts.LogDir, logName)

	if d.opts.DryRun {
		color.New(color.FgCyan).Fprintf(d.opts.Out, "[%s] %s\n", stage.Name, stage) //nolint:errcheck

		return nil
	}

	d.log.Info("running trimmomatic", "stage", stage.Name, "cmd", stage.String(), "stderr", logPath)

	logFile, err := os.Create(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if err = d.opts.Runner.Run(stage.Args, logFile); err != nil {
		return errors.Wrapf(ErrStageFailed, "%s stage (see %s): %s", stage.Name, logPath, err)
	}

	return logFile.Close()
}

// chain moves the adapter stage's trimmed files to temporary paths and deletes
// its singles files, updating the ledger.
func (d *Driver) chain() error {
	temp := d.builder.TempPaths()

	for i, trimmed := range d.ledger.Trimmed {
		if err := d.moveFile(trimmed, temp[i]); err != nil {
			return err
		}
	}

	if err := d.removeFiles(d.ledger.Singles); err != nil {
		return err
	}

	d.ledger.Chain(temp)

	return nil
}

func (d *Driver) moveFile(src, dst string) error {
	if d.opts.DryRun {
		color.New(color.FgYellow).Fprintf(d.opts.Out, "mv %s %s\n", src, dst) //nolint:errcheck

		return nil
	}

	d.log.Debug("moving intermediate file", "from", src, "to", dst)

	return moveFile(src, dst)
}

func (d *Driver) removeFiles(paths []string) error {
	for _, path := range paths {
		if d.opts.DryRun {
			color.New(color.FgYellow).Fprintf(d.opts.Out, "rm %s\n", path) //nolint:errcheck

			continue
		}

		d.log.Debug("removing intermediate file", "path", path)

		err := os.Remove(path)
		if os.IsNotExist(err) {
			d.log.Warn("intermediate file was not created", "path", path)

			continue
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// moveFile moves a file from src to dst, replacing dst. A rename is
// attempted first, falling back to a copy for moves between filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	return copyAndRemove(src, dst)
}

// copyAndRemove copies src to dst and removes src if successful.
func copyAndRemove(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer dstFile.Close()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	if err = dstFile.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
