package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/template"
)

type currency struct {
	Name  string
	Code  string
	Num   string
	Scale int
}

func main() {
	// Open the input file and read its contents
	data, err := readCsvFile(filepath.Join("scripts", "currency", "currency_data.csv"))
	if err != nil {
		panic(fmt.Errorf("error reading CSV file: %w", err))
	}

	// Convert the CSV records to a list of Currency objects
	currs, err := convertDataToCurrencies(data)
	if err != nil {
		panic(fmt.Errorf("error converting CSV records: %w", err))
	}

	// Generate Go code from the Currency objects using a template
	code, err := generateGoCode(filepath.Join("scripts", "currency", "currency_data.tmpl"), currs)
	if err != nil {
		panic(fmt.Errorf("error generating Go code: %w", err))
	}

	// Write the generated Go code to a file
	err = writeToFile("currency_data.go", code)
	if err != nil {
		panic(fmt.Errorf("error writing to file: %w", err))
	}
}

func readCsvFile(filename string) ([][]string, error) {
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	return readCsv(in)
}

func readCsv(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	_, err := reader.Read() // header
	if err != nil {
		return nil, err
	}
	return reader.ReadAll()
}

// convertDataToCurrencies validates the records and orders them so that
// XXX comes first and becomes the zero value of Currency.
func convertDataToCurrencies(data [][]string) ([]currency, error) {
	currs := make([]currency, 0, len(data))
	codes := map[string]bool{}
	nums := map[string]bool{}
	for _, rec := range data {
		curr := currency{
			Name: rec[0],
			Code: rec[1],
			Num:  rec[2],
		}
		if !isCode(curr.Code, 'A', 'Z') {
			return nil, fmt.Errorf("invalid alphabetic code %q", curr.Code)
		}
		if !isCode(curr.Num, '0', '9') {
			return nil, fmt.Errorf("%v: invalid numeric code %q", curr.Code, curr.Num)
		}
		if codes[curr.Code] {
			return nil, fmt.Errorf("duplicate alphabetic code %q", curr.Code)
		}
		if nums[curr.Num] {
			return nil, fmt.Errorf("%v: duplicate numeric code %q", curr.Code, curr.Num)
		}
		codes[curr.Code], nums[curr.Num] = true, true

		// Funds, precious metals and special codes have no minor unit
		if rec[3] != "N.A." {
			scale, err := strconv.Atoi(rec[3])
			if err != nil || scale < 0 || scale > 9 {
				return nil, fmt.Errorf("%v: invalid minor unit %q", curr.Code, rec[3])
			}
			curr.Scale = scale
		}
		currs = append(currs, curr)
	}
	if !codes["XXX"] {
		return nil, fmt.Errorf("missing currency XXX")
	}
	if len(currs) > 256 {
		return nil, fmt.Errorf("too many currencies: %v", len(currs))
	}

	sort.Slice(currs, func(i, j int) bool {
		a, b := currs[i].Code, currs[j].Code
		switch {
		case a == "XXX":
			return b != "XXX"
		case b == "XXX":
			return false
		}
		return a < b
	})
	return currs, nil
}

func isCode(s string, lo, hi byte) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < lo || s[i] > hi {
			return false
		}
	}
	return true
}

func generateGoCode(filename string, currs []currency) ([]byte, error) {
	tmpl, err := template.New(filepath.Base(filename)).ParseFiles(filename)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	err = tmpl.Execute(&output, currs)
	if err != nil {
		return nil, err
	}

	// Format the output as Go code
	return format.Source(output.Bytes())
}

func writeToFile(filename string, content []byte) error {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	writer := bufio.NewWriter(out)
	_, err = writer.Write(content)
	if err != nil {
		return err
	}
	return writer.Flush()
}
