// Package config loads the .env file and environment variables netwatch's
// CLI entry point needs before it can open a capture interface.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// maxEnvLineLen is the longest line LoadEnv accepts from a .env file. A
// longer line is dropped with a warning rather than truncated, since a
// truncated KEY=VALUE pair is worse than a missing one.
const maxEnvLineLen = 2048

// LoadEnv reads a .env file at path and applies every KEY=VALUE line to the
// process environment, without overwriting a variable already set. A
// missing file is not an error — .env is optional.
//
// The parsing itself is godotenv.Parse; LoadEnv's own job is the pre-pass
// godotenv doesn't do: reject a line longer than maxEnvLineLen, and
// tolerate a trailing '\r' so a Windows-authored .env still loads cleanly.
func LoadEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// bufio.Scanner's token buffer has a hard ceiling: once a single line
	// exceeds it, Scan permanently stops and every later line is lost. A
	// bufio.Reader has no such ceiling, so an oversized line can be
	// measured, warned about, and skipped without abandoning the rest of
	// the file.
	var cleaned strings.Builder
	reader := bufio.NewReader(f)

	lineNo := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if len(raw) > 0 {
			lineNo++
			line := strings.TrimRight(raw, "\r\n")
			if len(line) > maxEnvLineLen {
				fmt.Fprintf(os.Stderr, "config: %s:%d: line exceeds %d bytes, skipped\n", path, lineNo, maxEnvLineLen)
			} else {
				cleaned.WriteString(line)
				cleaned.WriteByte('\n')
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return fmt.Errorf("read %s: %w", path, readErr)
		}
	}

	vars, err := godotenv.Parse(strings.NewReader(cleaned.String()))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for key, value := range vars {
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
	return nil
}
