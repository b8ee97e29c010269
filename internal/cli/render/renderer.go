// Package render formats decode results for terminal output: colored
// severity badges, an ABI parameter table, and a per-sub-call breakdown
// for batches. It never decides severity or trust — it only displays
// what the orchestrator already computed.
package render

import (
	"io"

	"github.com/spf13/cobra"
)

// Renderer renders one result value to its configured writer.
type Renderer[T any] interface {
	Render(result T) error
}

// ProvideIO resolves the writer a command's renderer should use.
func ProvideIO(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
