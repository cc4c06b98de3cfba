package args

import (
	"strings"
)

// Descriptions renders one help entry per visible option. The short flag
// column is right-aligned, descriptions start in a common column and
// continuation lines are indented under the first one.
func Descriptions(showBeta bool) []string {
	opts := Visible(showBeta)

	var longWidth, shortWidth int
	for _, o := range opts {
		if len(o.Name) > longWidth {
			longWidth = len(o.Name)
		}
		if len(o.Short) > shortWidth {
			shortWidth = len(o.Short)
		}
	}

	lines := make([]string, 0, len(opts))
	for _, o := range opts {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", shortWidth-len(o.Short)))
		if o.Short != "" {
			b.WriteString("-" + o.Short)
		} else {
			b.WriteString(" ")
		}
		b.WriteString(" --" + o.Name + " ")

		for i, line := range strings.Split(strings.TrimSpace(o.Description), "\n") {
			line = strings.TrimSpace(line)
			if i == 0 {
				b.WriteString(strings.Repeat(" ", longWidth-len(o.Name)))
				if o.Deprecated {
					b.WriteString("(deprecated) ")
				}
				b.WriteString(line)
				continue
			}
			b.WriteString("\n")
			b.WriteString(strings.Repeat(" ", longWidth+shortWidth+6))
			b.WriteString(line)
		}

		if o.Kind == KindEnum {
			b.WriteString(" [" + strings.Join(o.Enum, ", ") + "]")
		}
		lines = append(lines, b.String())
	}
	return lines
}
