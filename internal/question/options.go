package question

import "strings"

// splitOptions separates a question body into stem text and lettered
// options. Lines before the first option line are stem. Once an option
// line has been seen the options section never closes again within the
// record: any later non-empty line that is not itself an option line
// extends the most recently opened option, so options may span lines.
func splitOptions(body string) (string, []string, map[string]string) {
	var stemLines []string
	var keys []string
	options := map[string]string{}
	lastKey := ""
	for _, line := range strings.Split(body, "\n") {
		if match := optionPattern.FindStringSubmatch(line); match != nil {
			letter := match[1]
			if _, exists := options[letter]; !exists {
				keys = append(keys, letter)
			}
			options[letter] = match[2]
			lastKey = letter
			continue
		}
		if lastKey == "" {
			stemLines = append(stemLines, line)
			continue
		}
		if strings.TrimSpace(line) != "" {
			options[lastKey] += "\n" + line
		}
	}
	return strings.TrimSpace(strings.Join(stemLines, "\n")), keys, options
}
