/*******************************************************************************
 * Copyright (c) 2025 Genome Research Ltd.
 *
 * Author: Sendu Bala <sb10@sanger.ac.uk>
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

// package cmd is the cobra file that enables subcommands and handles
// command-line args.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/trimmomatic-automation/config"
	"github.com/wtsi-hgi/trimmomatic-automation/params"
	"github.com/wtsi-hgi/trimmomatic-automation/pipeline"
	"github.com/wtsi-hgi/trimmomatic-automation/trimmomatic"
)

const (
	ErrNoArgs      = Error("give either --XML, or a layout followed by read files")
	ErrArgsWithXML = Error("layout and read files can't be given with --XML; set them in the configuration file")

	dirPerm    = 0755
	configFlag = "config"
)

type Error string

func (e Error) Error() string { return string(e) }

// appLogger is used for logging events in our commands.
var appLogger = log15.New()

// options for the root cmd.
var (
	xmlMode    bool
	configPath string
	dryRun     bool
	verbose    bool

	toPhred33 bool
	toPhred64 bool

	// optionFlags holds the values of the options that are passed through to
	// params.Args, keyed on flag name.
	optionFlags = map[string]*string{}
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "trimmomatic-automation {--XML | SE reads.fq | PE reads_1.fq reads_2.fq}",
	Short: "trimmomatic-automation runs Trimmomatic adapter and quality trimming",
	Long: `trimmomatic-automation runs Trimmomatic adapter and quality trimming.

Trimmomatic's jar and java must be available; see the TRIMMOMATIC_AUTOMATION_JAR
and TRIMMOMATIC_AUTOMATION_JAVA environment variables (which can also be set in
a .env file in the current directory).

Adapter trimming (ILLUMINACLIP) runs first, if requested. Quality trimming then
runs on its output (or on the original reads if there was no adapter trimming)
if any quality trimming option was given. Trimmomatic's STDERR for each step is
written to output_file_step1.out and output_file_step2.out.

Parameters can be supplied as a layout, read file(s) and options:
$ trimmomatic-automation PE read_1.fq.bz2 read_2.fq.bz2 \
    -illuminaclip fasta-file.fa:2:10:30 -slidingwindow 10:30 -minlen 36

Options can be given with either one or two leading dashes.

Trimmed reads are then written to the current directory as trimmed_read_1.fastq
etc. (plus single_read_1.fastq etc. for paired-end singletons).

Or they can be supplied in an XML configuration file:
$ trimmomatic-automation --XML --config configuration.xml

Use the "template" sub-command to create a configuration file to edit.
`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			appLogger.SetHandler(log15.LvlFilterHandler(log15.LvlDebug, log15.StderrHandler))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		c := config.FromEnv()

		p, err := loadParams(cmd, args, c)
		if err != nil {
			die(err)
		}

		if !dryRun {
			if err = createDirIfNotExist(p.OutputDir); err != nil {
				die(err)
			}
		}

		b := trimmomatic.New(p)
		b.Java = c.Java
		b.Jar = c.Jar

		d := pipeline.New(b, pipeline.Options{
			LogDir: c.LogDir,
			Logger: appLogger.New("pkg", "pipeline"),
			DryRun: dryRun,
		})

		result, err := d.Run()
		if err != nil {
			die(err)
		}

		report(result, p)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once to
// the rootCmd.
func Execute() {
	RootCmd.SetArgs(longOptionArgs(RootCmd, os.Args[1:]))

	if err := RootCmd.Execute(); err != nil {
		die(err)
	}
}

func init() {
	// set up logging to stderr
	appLogger.SetHandler(log15.LvlFilterHandler(log15.LvlInfo, log15.StderrHandler))

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	flags := RootCmd.Flags()
	flags.BoolVar(&xmlMode, "XML", false, "read parameters from the XML configuration file")
	flags.StringVar(&configPath, configFlag, config.DefaultConfigPath,
		"XML configuration file used with --XML [$"+config.EnvVarConfig+"]")
	flags.BoolVar(&dryRun, "dry-run", false, "print the commands that would be run without running them")

	addOption("threads", "number of threads to use (default 1)")
	addOption("phred", "phred quality of the input data, 33 or 64")
	addOption("illuminaclip", "adapter trimming: <fastaWithAdapters>:<seed mismatches>:"+
		"<palindrome clip threshold>:<simple clip threshold>\nrecommended: fasta-file.fa:2:30:10")
	addOption("slidingwindow", "quality trimming: <window size>:<required quality>\nrecommended: 4:30 or 10:30")
	addOption("maxinfo", "adaptive quality trimming: <target length>:<strictness>")
	addOption("leading", "minimum quality required to keep a base at the 5' end")
	addOption("trailing", "minimum quality required to keep a base at the 3' end")
	addOption("crop", "number of bases to keep from the start of each read")
	addOption("headcrop", "number of bases to remove from the start of each read")
	addOption("minlen", "minimum length of a read to be kept")
	addOption("avgqual", "minimum average quality of a read to be kept")
	addOption("compress", "compress trimmed reads with gz or bz2")

	flags.BoolVar(&toPhred33, "tophred33", false, "(re)encode quality scores to phred33")
	flags.BoolVar(&toPhred64, "tophred64", false, "(re)encode quality scores to phred64")
}

// longOptionArgs rewrites single-dash long options, like -threads, to their
// double-dash form so that they are parsed as long options and not as a
// cluster of shorthands. Tokens that don't name one of cmd's flags, such as
// negative numbers, are left alone.
func longOptionArgs(cmd *cobra.Command, args []string) []string {
	rewritten := make([]string, len(args))

	for i, arg := range args {
		rewritten[i] = arg

		if len(arg) < 3 || arg[0] != '-' || arg[1] == '-' {
			continue
		}

		name, _, _ := strings.Cut(arg[1:], "=")

		if cmd.Flags().Lookup(name) != nil || cmd.PersistentFlags().Lookup(name) != nil {
			rewritten[i] = "-" + arg
		}
	}

	return rewritten
}

func addOption(name, usage string) {
	optionFlags[name] = RootCmd.Flags().String(name, "", usage)
}

// loadParams gets validated parameters from the XML configuration file in XML
// mode, or from the command line otherwise.
func loadParams(cmd *cobra.Command, args []string, c *config.Config) (*params.Params, error) {
	if xmlMode {
		if len(args) > 0 {
			return nil, ErrArgsWithXML
		}

		path := c.ConfigPath
		if cmd.Flags().Changed(configFlag) {
			path = configPath
		}

		info("reading configuration", "path", path)

		return params.FromXMLFile(path)
	}

	if len(args) == 0 {
		return nil, ErrNoArgs
	}

	return params.FromArgs(params.Args{
		Layout:        args[0],
		Inputs:        args[1:],
		Threads:       changedOption(cmd, "threads"),
		Phred:         changedOption(cmd, "phred"),
		IlluminaClip:  changedOption(cmd, "illuminaclip"),
		SlidingWindow: changedOption(cmd, "slidingwindow"),
		MaxInfo:       changedOption(cmd, "maxinfo"),
		Leading:       changedOption(cmd, "leading"),
		Trailing:      changedOption(cmd, "trailing"),
		Crop:          changedOption(cmd, "crop"),
		HeadCrop:      changedOption(cmd, "headcrop"),
		MinLen:        changedOption(cmd, "minlen"),
		AvgQual:       changedOption(cmd, "avgqual"),
		Compress:      changedOption(cmd, "compress"),
		ToPhred33:     toPhred33,
		ToPhred64:     toPhred64,
	})
}

// changedOption returns the value of the named option, or nil if it wasn't
// supplied on the command line.
func changedOption(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	return optionFlags[name]
}

func createDirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); err == nil || !os.IsNotExist(err) {
		return err
	}

	info("creating working directory", "dir", dir)

	return os.MkdirAll(dir, dirPerm)
}

func report(result *pipeline.Result, p *params.Params) {
	if len(result.Stages) == 0 || dryRun {
		return
	}

	color.HiGreen("Trimmed reads: %s\n", strings.Join(result.Outputs.Trimmed, ", "))

	if p.ShowSingletons && len(result.Outputs.Singles) > 0 {
		color.HiMagenta("Singleton reads: %s\n", strings.Join(result.Outputs.Singles, ", "))
	}
}

// cliPrintRaw outputs the message to STDOUT with no interpretation of
// placeholders.
func cliPrintRaw(msg string) {
	fmt.Fprint(os.Stdout, msg)
}

// info is a convenience to log a message at the Info level.
func info(msg string, ctx ...interface{}) {
	appLogger.Info(msg, ctx...)
}

// die is a convenience to log an error at the Error level and exit non zero.
func die(err error) {
	appLogger.Error(err.Error())
	os.Exit(1)
}
