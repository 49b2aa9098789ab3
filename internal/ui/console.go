// Package ui renders search progress and results on the terminal.
package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Amr-9/pumpvanity/pkg/generator"
	"github.com/Amr-9/pumpvanity/pkg/generator/solana"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	goodColor  = color.New(color.FgGreen, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	keyColor   = color.New(color.FgYellow)
	dimColor   = color.New(color.Faint)
)

// PrintBanner shows the tool name and version.
func PrintBanner(w io.Writer, version string) {
	titleColor.Fprintf(w, "\n  pumpvanity")
	dimColor.Fprintf(w, " v%s  base58 vanity address search\n\n", version)
}

// PrintSearchInfo displays search configuration
func PrintSearchInfo(w io.Writer, network generator.Network, spec generator.MatchSpec, workers int) {
	goodColor.Fprintf(w, "  SEARCHING %s", network)
	if p := spec.PrefixPattern(); p != "" {
		titleColor.Fprintf(w, " %s", p)
		dimColor.Fprint(w, "...")
	}
	if s := spec.SuffixPattern(); s != "" {
		dimColor.Fprint(w, " ...")
		titleColor.Fprint(w, s)
	}
	dimColor.Fprintf(w, "  (1/%s, %d workers)\n\n", FormatNumber(EstimateDifficulty(spec)), workers)
}

// PrintSuccess shows the found address
func PrintSuccess(w io.Writer, scheme generator.Scheme, res *generator.SearchResult, outputFile string) {
	fmt.Fprintln(w)
	goodColor.Fprintln(w, "  ADDRESS FOUND")
	fmt.Fprintln(w)

	titleColor.Fprintf(w, "  %s ADDRESS\n", strings.ToUpper(res.Network.String()))
	goodColor.Fprintf(w, "     %s\n\n", res.Address)

	titleColor.Fprintln(w, "  PRIVATE KEY")
	keyColor.Fprintf(w, "     %s\n", scheme.EncodeSecret(res.Keypair))
	if res.Network == generator.Solana {
		dimColor.Fprintf(w, "     base64 %s\n", solana.EncodeSecretBase64(res.Keypair))
		if raw, err := solana.KeypairJSON(res.Keypair); err == nil {
			dimColor.Fprintf(w, "     bytes  %s\n", raw)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  time %s  |  attempts %s  |  rate %s",
		FormatDuration(res.Elapsed),
		FormatNumber(res.Attempts),
		FormatHashRate(rate(res.Attempts, res.Elapsed)))
	if outputFile != "" {
		fmt.Fprintf(w, "  |  saved %s", outputFile)
	}
	fmt.Fprintln(w)
	errColor.Fprintln(w, "\n  KEEP YOUR PRIVATE KEY SECRET!")
}

// PrintCancelled reports a search that stopped without a match.
func PrintCancelled(w io.Writer, reason string, stats generator.Stats) {
	warnColor.Fprintf(w, "\n  Cancelled (%s)", reason)
	fmt.Fprintf(w, "  |  %s attempts  |  %s\n",
		FormatNumber(stats.Attempts),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
}

// PrintError prints a one-line error.
func PrintError(w io.Writer, err error) {
	errColor.Fprintf(w, "  error: %v\n", err)
}

// EstimateDifficulty is the expected number of attempts for spec: 58 per
// constrained character, saturating at MaxUint64.
func EstimateDifficulty(spec generator.MatchSpec) uint64 {
	difficulty := uint64(1)
	for i := 0; i < spec.Len(); i++ {
		if difficulty > math.MaxUint64/58 {
			return math.MaxUint64
		}
		difficulty *= 58
	}
	return difficulty
}

// FoundProbability is the chance a match would have appeared within attempts tries.
func FoundProbability(attempts, difficulty uint64) float64 {
	if difficulty == 0 {
		return 1
	}
	return 1 - math.Exp(-float64(attempts)/float64(difficulty))
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, s[i])
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}

func rate(attempts uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(attempts) / elapsed.Seconds()
}
