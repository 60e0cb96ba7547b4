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

// Template returns an XML configuration with every parameter present, ready
// to be edited. Only the text of elements should be changed; adding, removing
// or renaming elements makes the configuration invalid.
func Template() string {
	return template
}

const template = `<?xml version="1.0" encoding="UTF-8"?>
<configuration>
	<input-output>
		<!-- SE (single-ends) or PE (paired-ends) -->
		<layout>PE</layout>
		<single-ends>
			<input name="read 1">reads.fastq</input>
		</single-ends>
		<paired-ends>
			<input name="read 1">reads_1.fastq.gz</input>
			<input name="read 2">reads_2.fastq.gz</input>
		</paired-ends>
		<working-directory>.</working-directory>
	</input-output>
	<program name="trimmomatic">
		<category name="adapter-trimming">
			<skip>no</skip>
			<parameter name="illuminaclip">
				<adapters-fasta-file>adapters.fa</adapters-fasta-file>
				<seed-mismatches>2</seed-mismatches>
				<palindrome-clip-threshold>30</palindrome-clip-threshold>
				<simple-clip-threshold>10</simple-clip-threshold>
				<min-adapter-length>
					<skip>yes</skip>
					<value>8</value>
				</min-adapter-length>
				<keep-both-reads>
					<skip>yes</skip>
					<value>true</value>
				</keep-both-reads>
			</parameter>
		</category>
		<category name="quality-trimming">
			<skip>no</skip>
			<parameter name="sliding-window">
				<skip>no</skip>
				<window-length>4</window-length>
				<required-quality>15</required-quality>
			</parameter>
			<parameter name="maxinfo">
				<skip>yes</skip>
				<target-length>40</target-length>
				<strictness>0.5</strictness>
			</parameter>
			<parameter name="leading">
				<skip>no</skip>
				<required-quality>3</required-quality>
			</parameter>
			<parameter name="trailing">
				<skip>no</skip>
				<required-quality>3</required-quality>
			</parameter>
			<parameter name="crop">
				<skip>yes</skip>
				<length>100</length>
			</parameter>
			<parameter name="headcrop">
				<skip>yes</skip>
				<length>10</length>
			</parameter>
			<parameter name="minlen">
				<skip>no</skip>
				<length>36</length>
			</parameter>
			<parameter name="average-quality">
				<skip>yes</skip>
				<required-quality>20</required-quality>
			</parameter>
		</category>
		<category name="useful-parameters">
			<parameter name="singleton-reads">
				<show>no</show>
			</parameter>
			<parameter name="convert-to-phred">
				<skip>yes</skip>
				<format>33</format>
			</parameter>
			<parameter name="threads">
				<number>1</number>
			</parameter>
			<parameter name="compressed-output">
				<skip>yes</skip>
				<format>gz</format>
			</parameter>
		</category>
	</program>
</configuration>
`
