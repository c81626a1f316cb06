package deck

import "strings"

// lineFormat represents a parsed markdown-lite line.
type lineFormat struct {
	text      string
	isBold    bool
	isHeading int
	isList    bool
}

// parseLine parses markdown-lite formatting for a text placeholder.
func parseLine(line string) lineFormat {
	result := lineFormat{text: line}

	if strings.HasPrefix(line, "#### ") {
		result.isHeading = 4
		result.text = strings.TrimPrefix(line, "#### ")
		result.isBold = true
	} else if strings.HasPrefix(line, "### ") {
		result.isHeading = 3
		result.text = strings.TrimPrefix(line, "### ")
		result.isBold = true
	} else if strings.HasPrefix(line, "## ") {
		result.isHeading = 2
		result.text = strings.TrimPrefix(line, "## ")
		result.isBold = true
	} else if strings.HasPrefix(line, "# ") {
		result.isHeading = 1
		result.text = strings.TrimPrefix(line, "# ")
		result.isBold = true
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		result.isList = true
		result.text = "• " + strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
	}

	result.text = stripBoldMarkers(result.text)
	return result
}

// stripBoldMarkers removes ** and __ markers.
func stripBoldMarkers(text string) string {
	for strings.Contains(text, "**") {
		start := strings.Index(text, "**")
		end := strings.Index(text[start+2:], "**")
		if end == -1 {
			break
		}
		text = text[:start] + text[start+2:start+2+end] + text[start+2+end+2:]
	}
	for strings.Contains(text, "__") {
		start := strings.Index(text, "__")
		end := strings.Index(text[start+2:], "__")
		if end == -1 {
			break
		}
		text = text[:start] + text[start+2:start+2+end] + text[start+2+end+2:]
	}
	return text
}

// wrapText wraps text to fit within maxLen characters, preferring to
// break at spaces and CJK punctuation.
func wrapText(text string, maxLen int) []string {
	if len(text) == 0 {
		return []string{""}
	}

	var lines []string
	runes := []rune(text)

	if containsChinese(text) {
		maxLen = maxLen * 2 / 3
	}

	for len(runes) > 0 {
		if len(runes) <= maxLen {
			lines = append(lines, string(runes))
			break
		}

		breakPoint := maxLen
		for i := maxLen; i > maxLen/2; i-- {
			if runes[i] == ' ' || runes[i] == '，' || runes[i] == '。' || runes[i] == '、' || runes[i] == '；' {
				breakPoint = i + 1
				break
			}
		}

		lines = append(lines, string(runes[:breakPoint]))
		runes = runes[breakPoint:]

		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}

	return lines
}

func containsChinese(text string) bool {
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
