package colors

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var sgrPattern = regexp.MustCompile("\x1b\\[([0-9;]*)m")

var ansiPalette = map[int]string{
	30: "#000000", 31: "#cd3131", 32: "#0dbc79", 33: "#e5e510",
	34: "#2472c8", 35: "#bc3fbc", 36: "#11a8cd", 37: "#e5e5e5",
	90: "#666666", 91: "#f14c4c", 92: "#23d18b", 93: "#f5f543",
	94: "#3b8eea", 95: "#d670d6", 96: "#29b8db", 97: "#ffffff",
}

// ConvertANSIToHTML turns SGR-colored text into HTML spans. Unknown codes
// are dropped; text is escaped.
func ConvertANSIToHTML(text string) string {
	var b strings.Builder
	open := 0

	closeAll := func() {
		for ; open > 0; open-- {
			b.WriteString("</span>")
		}
	}

	last := 0
	for _, m := range sgrPattern.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:m[0]]))
		last = m[1]

		params := text[m[2]:m[3]]
		if params == "" || params == "0" {
			closeAll()
			continue
		}

		var styles []string
		for _, p := range strings.Split(params, ";") {
			code, err := strconv.Atoi(p)
			if err != nil {
				continue
			}
			switch {
			case code == 0:
				closeAll()
			case code == 1:
				styles = append(styles, "font-weight:bold")
			case ansiPalette[code] != "":
				styles = append(styles, "color:"+ansiPalette[code])
			}
		}
		if len(styles) > 0 {
			b.WriteString(`<span style="` + strings.Join(styles, ";") + `">`)
			open++
		}
	}
	b.WriteString(html.EscapeString(text[last:]))
	closeAll()

	return b.String()
}
