package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/signguard/signguard/internal/domain"
)

// DecodeRenderer renders one AnalysisResult as a human-readable report:
// a header line, a parameter table, effect consequences/warnings, and —
// for batches — a per-sub-call severity table.
type DecodeRenderer struct {
	out io.Writer
}

// NewDecodeRenderer builds a DecodeRenderer writing to out.
func NewDecodeRenderer(out io.Writer) *DecodeRenderer {
	return &DecodeRenderer{out: out}
}

// Render implements Renderer[*domain.AnalysisResult].
func (r *DecodeRenderer) Render(result *domain.AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("render: nil analysis result")
	}

	fmt.Fprintf(r.out, "%s %s\n", sectionHeader("Selector"), result.Selector.String())
	fmt.Fprintf(r.out, "%s %s\n", sectionHeader("Signature"), fmtSignature(result))
	fmt.Fprintf(r.out, "%s %s\n", sectionHeader("Source"), result.Source)

	if result.HeaderSeverity != nil {
		fmt.Fprintf(r.out, "%s %s\n", sectionHeader("Trust"), FormatSeverityBadge(*result.HeaderSeverity))
	}
	fmt.Fprintf(r.out, "%s %s (%s)\n", sectionHeader("Effect"), result.Effect.EffectType, FormatSeverityBadge(result.Effect.Severity))
	if result.Effect.TrustOverride {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf(
			"severity overridden to UNKNOWN; would otherwise have been %s", result.Effect.OriginalSeverity)))
	}
	if result.IsDelegatecall {
		fmt.Fprintln(r.out, FormatWarning("this call executes via DELEGATECALL — the target runs with full Safe authority"))
	}

	if len(result.Params) > 0 {
		fmt.Fprintln(r.out, sectionHeader("Parameters"))
		r.renderParamTable(result.Params)
	}

	for _, c := range result.Effect.Consequences {
		fmt.Fprintf(r.out, "  - %s\n", c)
	}
	for _, w := range result.Effect.Warnings {
		fmt.Fprintln(r.out, FormatWarning(w))
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(r.out, FormatWarning(w))
	}

	if result.IsBatch && result.BatchInfo != nil {
		r.renderBatch(result.BatchInfo)
	}

	return nil
}

func (r *DecodeRenderer) renderParamTable(params []domain.DecodedParam) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.AppendHeader(table.Row{"Name", "Type", "Value"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
	})
	for _, p := range params {
		t.AppendRow(table.Row{p.Name, p.Type, formatParamValue(p)})
	}
	t.Render()
}

func formatParamValue(p domain.DecodedParam) string {
	switch {
	case p.Address != "":
		return fmtAddress(p.Address)
	case p.BigInt != nil:
		return p.BigInt.String()
	case p.RawBytes != nil:
		return abbreviateHex(p.RawBytes)
	default:
		return fmt.Sprintf("%v", p.Value)
	}
}

func abbreviateHex(b []byte) string {
	s := "0x" + fmt.Sprintf("%x", b)
	if len(s) <= 20 {
		return s
	}
	return s[:10] + "…" + s[len(s)-6:]
}

func (r *DecodeRenderer) renderBatch(b *domain.BatchInfo) {
	fmt.Fprintf(r.out, "\n%s %s\n", sectionHeader("Batch"), b.BatchType)
	if b.BatchType == domain.BatchUnparseableBatch {
		fmt.Fprintln(r.out, FormatError(b.Error))
		fmt.Fprintln(r.out, fmtFaint("raw calldata retained, unparsed: "+abbreviateHexString(b.RawCalldata)))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Op", "To", "Signature", "Severity"})
	for i, sc := range b.Calls {
		op := sc.SubCall.Operation.String()
		sig := "unknown"
		band := domain.BandUnknown
		if sc.Analysis != nil {
			sig = fmtSignature(sc.Analysis)
			band = domain.SeverityBand(sc.Analysis.Effect.Severity)
		}
		t.AppendRow(table.Row{i, op, fmtAddress(sc.SubCall.To), sig, FormatBand(band)})
	}
	t.Render()

	fmt.Fprintln(r.out, sectionHeader("Counts"))
	var counts []string
	for _, band := range []domain.SubCallSeverityBand{domain.BandDanger, domain.BandUnknown, domain.BandWarn, domain.BandOK} {
		if n := b.Counts[band]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s=%d", band, n))
		}
	}
	fmt.Fprintln(r.out, strings.Join(counts, " "))
}

func abbreviateHexString(s string) string {
	if len(s) <= 20 {
		return s
	}
	return s[:10] + "…" + s[len(s)-6:]
}
