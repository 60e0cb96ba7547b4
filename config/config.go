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

package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/wtsi-hgi/trimmomatic-automation/trimmomatic"
)

const (
	EnvVarJava   = "TRIMMOMATIC_AUTOMATION_JAVA"
	EnvVarJar    = "TRIMMOMATIC_AUTOMATION_JAR"
	EnvVarConfig = "TRIMMOMATIC_AUTOMATION_CONFIG"
	EnvVarLogDir = "TRIMMOMATIC_AUTOMATION_LOG_DIR"

	DefaultConfigPath = "configuration.xml"
	DefaultLogDir     = "."
)

type Config struct {
	Java       string
	Jar        string
	ConfigPath string
	LogDir     string
}

// FromEnv returns a new Config with properies populated from environment
// variables TRIMMOMATIC_AUTOMATION_*, where * is amongst: JAVA, JAR, CONFIG and
// LOG_DIR. Unset variables get defaults: "java", "trimmomatic-0.33.jar",
// "configuration.xml" and ".".
//
// If these environment variables are defined in a file called .env (and not
// previously set in an environment variable), they will be automatically
// loaded.
//
// Optionally supply a directory to look for the .env file in.
func FromEnv(dir ...string) *Config {
	var parentDir string
	if len(dir) == 1 {
		parentDir = dir[0] + string(os.PathSeparator)
	}

	godotenv.Load(parentDir + ".env") //nolint:errcheck

	return &Config{
		Java:       envOr(EnvVarJava, trimmomatic.DefaultJava),
		Jar:        envOr(EnvVarJar, trimmomatic.DefaultJar),
		ConfigPath: envOr(EnvVarConfig, DefaultConfigPath),
		LogDir:     envOr(EnvVarLogDir, DefaultLogDir),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
