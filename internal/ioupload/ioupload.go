// Package ioupload turns uploaded CSV, TSV and XLSX files into raw tables.
package ioupload

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gndash/pkg/specimen"
	"github.com/gnames/gnlib"
	"github.com/xuri/excelize/v2"
)

// Options modify parsing of uploads.
type Options struct {
	// FixUTF8 repairs invalid UTF-8 instead of returning a decode error.
	FixUTF8 bool

	// MaxBytes limits the size of an upload. Zero means no limit.
	MaxBytes int64
}

const bom = "\ufeff"

var errNoHeader = errors.New("file has no header")

// Parse reads an uploaded file. The format is chosen by the file
// extension.
func Parse(
	filename string,
	data []byte,
	opts Options,
) (*specimen.RawTable, error) {
	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		return nil, TooLargeError(
			filename, humanize.Bytes(uint64(opts.MaxBytes)),
		)
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return parseText(filename, data, ',', opts)
	case ".tsv":
		return parseText(filename, data, '\t', opts)
	case ".xlsx", ".xlsm":
		return parseXLSX(filename, data)
	default:
		return nil, FileTypeError(filename)
	}
}

// IsSupported reports whether a file name has a supported extension.
func IsSupported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

func parseText(
	filename string,
	data []byte,
	delim rune,
	opts Options,
) (*specimen.RawTable, error) {
	data = bytes.TrimPrefix(data, []byte(bom))
	if !utf8.Valid(data) {
		if !opts.FixUTF8 {
			return nil, DecodeError(filename, invalidUTF8(data))
		}
		data = []byte(gnlib.FixUtf8(string(data)))
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, ParseError(filename, errNoHeader)
	}
	if err != nil {
		return nil, ParseError(filename, err)
	}
	if isBlank(header) {
		return nil, ParseError(filename, errNoHeader)
	}

	res := specimen.RawTable{Header: trimAll(header)}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ParseError(filename, err)
		}
		if len(row) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, ParseError(filename, fmt.Errorf(
				"expected %d fields in line %d, saw %d",
				len(header), line, len(row),
			))
		}
		res.Rows = append(res.Rows, row)
	}
	return &res, nil
}

func parseXLSX(filename string, data []byte) (*specimen.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, ParseError(filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ParseError(filename, errNoHeader)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ParseError(filename, err)
	}
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, ParseError(filename, errNoHeader)
	}

	res := specimen.RawTable{Header: trimAll(rows[0])}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		// cells beyond the header have no column name and are dropped
		if len(row) > len(res.Header) {
			row = row[:len(res.Header)]
		}
		res.Rows = append(res.Rows, row)
	}
	return &res, nil
}

func invalidUTF8(data []byte) error {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("invalid UTF-8 byte 0x%x at position %d",
				data[i], i)
		}
		i += size
	}
	return errors.New("invalid UTF-8")
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimAll(row []string) []string {
	res := make([]string, len(row))
	for i, v := range row {
		res[i] = strings.TrimSpace(v)
	}
	return res
}
