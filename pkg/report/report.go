package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/datatug/netexplorer/pkg/catalog"
	"github.com/datatug/netexplorer/pkg/explorer"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const maxLargeFolders = 10

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown report format: %q", s)
}

// document is what the structured formats serialize: the report plus the
// recommendations the text layout prints.
type document struct {
	explorer.DiagnosisReport `yaml:",inline"`
	Recommendations          []string `json:"recommendations" yaml:"recommendations"`
}

// Write renders r in the given format.
func Write(w io.Writer, format Format, r explorer.DiagnosisReport, cat *catalog.Catalog) (err error) {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(document{DiagnosisReport: r, Recommendations: Recommendations(r)})
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err = encoder.Encode(document{DiagnosisReport: r, Recommendations: Recommendations(r)}); err != nil {
			return err
		}
		return encoder.Close()
	default:
		_, err = io.WriteString(w, Text(r, cat))
		return err
	}
}

type extCount struct {
	ext   string
	count int
}

// sortedFileTypes orders the histogram by count, most frequent first.
func sortedFileTypes(fileTypes map[string]int) []extCount {
	result := make([]extCount, 0, len(fileTypes))
	for ext, count := range fileTypes {
		result = append(result, extCount{ext: ext, count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].count != result[j].count {
			return result[i].count > result[j].count
		}
		return result[i].ext < result[j].ext
	})
	return result
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func heading(sb *strings.Builder, title string) {
	sb.WriteString("\n\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(title)))
}

// Text renders the human-readable diagnosis report.
func Text(r explorer.DiagnosisReport, cat *catalog.Catalog) string {
	if cat == nil {
		cat = catalog.Default
	}
	var sb strings.Builder

	sb.WriteString("FOLDER DIAGNOSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(fmt.Sprintf("Path:             %s\n", r.Root))
	sb.WriteString(fmt.Sprintf("Network Location: %s\n", yesNo(r.IsNetwork)))
	sb.WriteString(fmt.Sprintf("Accessible:       %s", yesNo(r.Accessible)))

	heading(&sb, "SUMMARY STATISTICS")
	sb.WriteString(fmt.Sprintf("\nTotal Folders:       %s", humanize.Comma(int64(r.TotalFolders))))
	sb.WriteString(fmt.Sprintf("\nTotal Files:         %s", humanize.Comma(int64(r.TotalFiles))))
	sb.WriteString(fmt.Sprintf("\nSample Time:         %.1f seconds", r.Elapsed.Seconds()))
	if r.SampleComplete {
		sb.WriteString(fmt.Sprintf("\nEstimated Scan Time: %.1f seconds", r.EstimatedScanTime.Seconds()))
	} else {
		sb.WriteString("\nEstimated Scan Time: n/a (sample not completed)")
	}

	heading(&sb, "FILE TYPES FOUND")
	if len(r.FileTypes) == 0 {
		sb.WriteString("\nNo matching file types found in sample.")
	}
	for _, ft := range sortedFileTypes(r.FileTypes) {
		sb.WriteString(fmt.Sprintf("\n%6s files: %6s (%s)", strings.ToUpper(ft.ext), humanize.Comma(int64(ft.count)), cat.CategoryOf(ft.ext)))
	}

	if len(r.LargeFolders) > 0 {
		heading(&sb, fmt.Sprintf("LARGE FOLDERS (>%d files)", r.LargeFolderLimit))
		for i, folder := range r.LargeFolders {
			if i == maxLargeFolders {
				sb.WriteString(fmt.Sprintf("\n... and %d more folders", len(r.LargeFolders)-maxLargeFolders))
				break
			}
			sb.WriteString(fmt.Sprintf("\n%4s files: %s", humanize.Comma(int64(folder.FileCount)), folder.Path))
		}
	}

	if len(r.Errors) > 0 {
		heading(&sb, "ERRORS ENCOUNTERED")
		for _, e := range r.Errors {
			sb.WriteString("\n• " + e)
		}
	}

	heading(&sb, "RECOMMENDATIONS")
	for _, rec := range Recommendations(r) {
		sb.WriteString("\n• " + rec)
	}

	if !r.CompletedAt.IsZero() {
		sb.WriteString("\n\nDiagnosis completed: " + r.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	sb.WriteString("\n")
	return sb.String()
}

// Recommendations suggests how to approach a full scan of the diagnosed tree.
func Recommendations(r explorer.DiagnosisReport) (recommendations []string) {
	if r.EstimatedScanTime.Seconds() > 60 {
		recommendations = append(recommendations,
			fmt.Sprintf("Large folder detected - scan may take %.1f minutes", r.EstimatedScanTime.Minutes()),
			"Consider scanning with specific file type filters",
		)
	}
	if r.IsNetwork {
		recommendations = append(recommendations,
			"Network location - ensure stable connection during scan",
			"Network scan may be slower than local scan",
		)
	}
	if len(r.LargeFolders) > 5 {
		recommendations = append(recommendations, "Many large folders detected - consider scanning subfolders individually")
	}
	if len(r.FileTypes) == 0 {
		recommendations = append(recommendations, "No matching file types found in sample - check your file filters")
	}
	return recommendations
}
