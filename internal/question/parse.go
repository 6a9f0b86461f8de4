package question

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Field names of the record grammar. A line "Name: value" naming one of
// these opens a new field; any other line continues the open field.
const (
	fieldProblem     = "Problem"
	fieldPoints      = "Points"
	fieldType        = "Type"
	fieldTopic       = "Topic"
	fieldQuestion    = "Question"
	fieldAnswer      = "Answer"
	fieldExplanation = "Explanation"
)

var (
	fieldPattern  = regexp.MustCompile(`^(Problem|Points|Type|Topic|Question|Answer|Explanation):(.*)`)
	optionPattern = regexp.MustCompile(`^([A-Z])\)\s*(.*)`)
)

// requiredFields must all be present or the record is dropped.
var requiredFields = []string{fieldProblem, fieldPoints, fieldQuestion, fieldAnswer}

// Parse converts a bank document into an ordered list of questions plus
// diagnostics for every degraded record. Malformed records never abort
// the parse; the worst outcome for a block is a diagnostic and no
// question. The result is a pure function of the document text.
func Parse(text string) ([]Question, []Diagnostic) {
	var questions []Question
	var diags []Diagnostic
	for _, block := range splitBlocks(text) {
		record, blockDiags, ok := buildQuestion(scanFields(block), block)
		diags = append(diags, blockDiags...)
		if ok {
			questions = append(questions, record)
		}
	}
	if !sortByNumericID(questions) && len(questions) > 0 {
		diags = append(diags, Diagnostic{Message: "cannot sort questions numerically by id; keeping document order"})
	}
	return questions, diags
}

// splitBlocks cuts the document at every line that starts a new record,
// keeping the marker line at the head of the following block.
func splitBlocks(text string) []string {
	var blocks []string
	var current []string
	flush := func() {
		block := strings.TrimSpace(strings.Join(current, "\n"))
		if block != "" {
			blocks = append(blocks, block)
		}
		current = nil
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, fieldProblem+":") {
			flush()
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// scanFields walks a block top to bottom with one state variable (the
// open field) and one accumulator (its buffered lines). Lines that do
// not open a field are appended verbatim to the open field's buffer,
// which is what makes multi-line field values work. Blank lines are
// swallowed only while no field is open.
func scanFields(block string) map[string]string {
	fields := map[string]string{}
	current := ""
	var buffer []string
	flush := func() {
		if current == "" || len(buffer) == 0 {
			return
		}
		fields[current] = strings.TrimSpace(strings.Join(buffer, "\n"))
	}
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" && current == "" {
			continue
		}
		if match := fieldPattern.FindStringSubmatch(line); match != nil {
			flush()
			current = match[1]
			buffer = []string{strings.TrimSpace(match[2])}
			continue
		}
		if current != "" {
			buffer = append(buffer, line)
		}
	}
	flush()
	return fields
}

// buildQuestion validates and converts one scanned record. A record
// missing a required field is dropped; everything else degrades into
// diagnostics plus best-effort data.
func buildQuestion(fields map[string]string, block string) (Question, []Diagnostic, bool) {
	var missing []string
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		diag := Diagnostic{Message: fmt.Sprintf("dropping incomplete block (missing %s): %s", strings.Join(missing, ", "), preview(block))}
		return Question{}, []Diagnostic{diag}, false
	}

	record := Question{
		ID:          fields[fieldProblem],
		Type:        fields[fieldType],
		Topic:       fields[fieldTopic],
		Explanation: fields[fieldExplanation],
	}
	var diags []Diagnostic

	points, err := parsePoints(fields[fieldPoints])
	if err != nil {
		diags = append(diags, Diagnostic{QuestionID: record.ID, Message: fmt.Sprintf("cannot parse points %q; defaulting to 0", fields[fieldPoints])})
	}
	record.Points = points

	record.Stem, record.OptionKeys, record.Options = splitOptions(fields[fieldQuestion])

	record.Answer = strings.ToUpper(strings.TrimSpace(fields[fieldAnswer]))
	if !record.HasOption(record.Answer) {
		diags = append(diags, Diagnostic{QuestionID: record.ID, Message: fmt.Sprintf("answer %q has no matching option (options: %s)", record.Answer, strings.Join(record.OptionKeys, ", "))})
	}
	return record, diags, true
}

// parsePoints coerces the free-text points field to an integer the way
// the bank authors write it: decimal values are truncated.
func parsePoints(raw string) (int, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

// sortByNumericID orders questions by integer-parsed id. If any id is
// not an integer the slice is left in document order and the function
// reports false; there is no partial sort.
func sortByNumericID(questions []Question) bool {
	ids := make(map[string]int, len(questions))
	for _, record := range questions {
		id, err := strconv.Atoi(record.ID)
		if err != nil {
			return false
		}
		ids[record.ID] = id
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return ids[questions[i].ID] < ids[questions[j].ID]
	})
	return true
}

// preview shortens a block for inclusion in a diagnostic.
func preview(block string) string {
	normalized := strings.Join(strings.Fields(block), " ")
	const limit = 100
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit] + "..."
}
