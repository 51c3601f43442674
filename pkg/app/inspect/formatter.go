package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput formats an inspection response according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatTable(w io.Writer, r *Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	aligned := "yes"
	if !r.BlockAligned {
		aligned = "no"
	}

	fmt.Fprintf(tw, "Path:\t%s\n", r.Path)
	fmt.Fprintf(tw, "File size:\t%d\n", r.FileSize)
	fmt.Fprintf(tw, "Flock:\t%q (%d bytes)\n", r.Flock, r.FlockLength)
	fmt.Fprintf(tw, "IV:\t%s\n", r.IV)
	fmt.Fprintf(tw, "Reserved:\t%s\n", r.Reserved)
	fmt.Fprintf(tw, "Metadata:\t%d bytes\n", r.MetadataSize)
	fmt.Fprintf(tw, "Header size:\t%d\n", r.HeaderSize)
	fmt.Fprintf(tw, "Ciphertext:\t%d bytes (block aligned: %s)\n", r.CiphertextSize, aligned)

	return tw.Flush()
}
