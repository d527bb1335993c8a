package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"

	"github.com/nonsonwune/mcm_db/importer"
)

// promptForTable asks for a file name until it names a readable .csv table.
// It only gives up when the input ends.
func promptForTable(in *bufio.Reader, out io.Writer, open func(string) (*importer.Table, error)) (string, *importer.Table, error) {
	warn := color.New(color.FgRed)
	for {
		fmt.Fprint(out, "Enter file name: ")
		line, readErr := in.ReadString('\n')
		name := strings.TrimSpace(line)
		if readErr != nil && name == "" {
			return "", nil, fmt.Errorf("no file name entered: %w", readErr)
		}

		if err := importer.CheckExtension(name); err != nil {
			warn.Fprintln(out, "You must specify a valid .csv file")
			continue
		}

		table, err := open(name)
		switch {
		case err == nil:
			return name, table, nil
		case errors.Is(err, importer.ErrFileNotFound):
			warn.Fprintf(out, "%s couldn't be found\n", name)
		case errors.Is(err, importer.ErrUnreadable):
			warn.Fprintf(out, "%s couldn't be read: %v\n", name, err)
		default:
			return "", nil, err
		}
	}
}

// readString returns the next trimmed line. Input that ends without a newline
// yields whatever was typed, so a closed stdin answers a y/n question with no.
func readString(in *bufio.Reader) string {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		log.Printf("Error reading input: %v", err)
	}
	return strings.TrimSpace(line)
}
