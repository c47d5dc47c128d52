package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/datatug/netexplorer/pkg/explorer"
	"github.com/datatug/netexplorer/pkg/fsutils"
)

const TimeLayout = "2006-01-02 15:04"

var Header = []string{"Name", "Type", "Size", "Modified", "Path"}

// Row renders a record the way the files table displays it.
func Row(r explorer.FileRecord) []string {
	return []string{
		r.Name,
		r.Category,
		fsutils.FormatFileSize(r.Size),
		r.Modified.Format(TimeLayout),
		r.Path,
	}
}

// WriteCSV writes records as comma-separated values with a header row.
func WriteCSV(w io.Writer, records []explorer.FileRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTSV writes records as tab-separated lines. Fields are written as is.
func WriteTSV(w io.Writer, records []explorer.FileRecord) error {
	if _, err := io.WriteString(w, strings.Join(Header, "\t")+"\n"); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := io.WriteString(w, strings.Join(Row(r), "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// ToFile exports records to filePath: CSV when the name ends with .csv,
// tab-separated text otherwise.
func ToFile(filePath string, records []explorer.FileRecord) (err error) {
	if len(records) == 0 {
		return fmt.Errorf("no results to export")
	}
	var f *os.File
	if f, err = os.Create(filePath); err != nil {
		return fmt.Errorf("could not export results: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	if strings.EqualFold(filepath.Ext(filePath), ".csv") {
		return WriteCSV(f, records)
	}
	return WriteTSV(f, records)
}
