package markdown

import "strings"

// frontMatterDelimiter separates TOML front matter from the post body.
const frontMatterDelimiter = "+++"

// splitFrontMatter separates the TOML front matter block from the
// body. Returns empty front matter when the file has none.
func splitFrontMatter(raw string) (meta, body string) {
	trimmed := strings.TrimPrefix(raw, "\ufeff")
	if !strings.HasPrefix(trimmed, frontMatterDelimiter) {
		return "", raw
	}

	rest := trimmed[len(frontMatterDelimiter):]
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	end := strings.Index(rest, "\n"+frontMatterDelimiter)
	if end < 0 {
		return "", raw
	}

	meta = rest[:end]
	body = rest[end+1+len(frontMatterDelimiter):]
	body = strings.TrimPrefix(body, "\r\n")
	body = strings.TrimPrefix(body, "\n")
	return meta, body
}

// extractTitle finds the first H1 heading in the body, for posts whose
// front matter does not set a title.
func extractTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}
