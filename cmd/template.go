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

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/trimmomatic-automation/params"
)

const filePerm = 0644

// options for this cmd.
var templateOutput string

// templateCmd represents the template command.
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an XML configuration template.",
	Long: `Write an XML configuration template.

The template contains every supported parameter, with a skip element for the
optional ones. Edit the text of the elements to suit, but do not add, remove
or rename any element, or the file will be rejected.

The template is written to STDOUT, or to the file given by -o.
`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if templateOutput == "" {
			cliPrintRaw(params.Template())

			return
		}

		if err := os.WriteFile(templateOutput, []byte(params.Template()), filePerm); err != nil {
			die(err)
		}

		info("wrote configuration template", "path", templateOutput)
	},
}

func init() {
	RootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "",
		"path to write the template to")
}
