package decrypt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput formats decryption results according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table
func formatTable(w io.Writer, response *Response) error {
	if len(response.Files) == 0 {
		fmt.Fprintln(w, "No containers found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header
	fmt.Fprintf(tw, "INPUT\tOUTPUT\tFLOCK\tSIZE\tSTATUS\n")
	fmt.Fprintf(tw, "-----\t------\t-----\t----\t------\n")

	// Results are already sorted by input path
	for _, file := range response.Files {
		status := file.Status
		if file.ErrorKind != "" {
			status = fmt.Sprintf("%s (%s: %s)", file.Status, file.ErrorKind, file.Error)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			file.Input, file.Output, file.Flock, file.FormatSize(), status)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	// Summary
	fmt.Fprintf(w, "\n%s\n", FormatSummary(response))

	return nil
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a brief summary line
func FormatSummary(response *Response) string {
	if response.Total == 0 {
		return "No containers found"
	}

	summary := fmt.Sprintf("Decrypted %d of %d file", response.Succeeded, response.Total)
	if response.Total != 1 {
		summary += "s"
	}

	var totalSize int64
	for _, file := range response.Files {
		totalSize += file.Size
	}
	summary += fmt.Sprintf(" (%s)", formatBytes(totalSize))

	if response.Failed > 0 {
		summary += fmt.Sprintf(", %d failed", response.Failed)
	}
	if response.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", response.Skipped)
	}
	if response.Cancelled > 0 {
		summary += fmt.Sprintf(", %d cancelled", response.Cancelled)
	}

	summary += fmt.Sprintf(" in %v", response.Elapsed)

	return summary
}
