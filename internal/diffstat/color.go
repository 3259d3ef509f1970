package diffstat

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"github.com/example/workmux/internal/logging"
)

// Colorize renders a unified diff for terminal display. It first tries an
// external pretty-printer (delta, if present on PATH); if that's unavailable
// or fails, it falls back to a built-in ANSI colorer.
func Colorize(ctx context.Context, diff string) string {
	if out, ok := colorizeWithDelta(ctx, diff); ok {
		return out
	}
	return colorizeBuiltin(diff)
}

// colorizeWithDelta pipes diff through an external "delta" process. Writing
// is done from a side goroutine so a large diff can't deadlock against
// delta's own stdout buffer filling up before we've finished writing stdin.
func colorizeWithDelta(ctx context.Context, diff string) (string, bool) {
	path, err := exec.LookPath("delta")
	if err != nil {
		return "", false
	}

	cmd := exec.CommandContext(ctx, path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", false
	}
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Start(); err != nil {
		return "", false
	}

	go func() {
		defer stdin.Close()
		io.Copy(stdin, strings.NewReader(diff))
	}()

	if err := cmd.Wait(); err != nil {
		logging.Debugf("delta rendering failed, falling back: %v", err)
		return "", false
	}
	return out.String(), true
}

var (
	addColor    = color.New(color.FgGreen)
	removeColor = color.New(color.FgRed)
	hunkColor   = color.New(color.FgCyan)
	headerColor = color.New(color.FgHiBlack)
)

// colorizeBuiltin line-colors a unified diff without any external tooling:
// green additions, red removals, cyan hunk headers, dim file headers.
func colorizeBuiltin(diff string) string {
	lines := strings.Split(diff, "\n")
	var b strings.Builder
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkColor.Sprint(line))
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") ||
			strings.HasPrefix(line, "diff --git") || strings.HasPrefix(line, "index "):
			b.WriteString(headerColor.Sprint(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addColor.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removeColor.Sprint(line))
		default:
			b.WriteString(line)
		}
		if i != len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
