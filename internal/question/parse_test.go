package question

import (
	"strings"
	"testing"
)

const wellFormedBank = `Problem: 2
Points: 5
Type: MC
Topic: Loops
Question: What does the loop print?
A) 1 2 3
B) 3 2 1
C) nothing
Answer: a
Explanation: The counter goes up.

Problem: 1
Points: 10
Type: MC
Topic: Variables
Question: Which name is a valid identifier?
A) 2x
B) x2
Answer: B
`

// TestParseWellFormedBank verifies field values and id-ascending order.
func TestParseWellFormedBank(t *testing.T) {
	questions, diags := Parse(wellFormedBank)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != "1" || questions[1].ID != "2" {
		t.Fatalf("expected id-ascending order, got %q, %q", questions[0].ID, questions[1].ID)
	}
	second := questions[1]
	if second.Points != 5 {
		t.Fatalf("expected 5 points, got %d", second.Points)
	}
	if second.Type != "MC" || second.Topic != "Loops" {
		t.Fatalf("unexpected metadata: %q / %q", second.Type, second.Topic)
	}
	if second.Stem != "What does the loop print?" {
		t.Fatalf("unexpected stem: %q", second.Stem)
	}
	if got := strings.Join(second.OptionKeys, ""); got != "ABC" {
		t.Fatalf("expected options ABC in order, got %q", got)
	}
	if second.Answer != "A" {
		t.Fatalf("expected answer normalized to A, got %q", second.Answer)
	}
	if second.Explanation != "The counter goes up." {
		t.Fatalf("unexpected explanation: %q", second.Explanation)
	}
}

// TestParseMultiLineOption verifies continuation lines extend the open
// option and never leak into the stem or a later option.
func TestParseMultiLineOption(t *testing.T) {
	doc := `Problem: 7
Points: 2
Question: Pick one.
A) first
B) second line one
second line two
C) third
Answer: B
`
	questions, diags := Parse(doc)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	q := questions[0]
	if got := q.Option("B"); got != "second line one\nsecond line two" {
		t.Fatalf("expected joined option B, got %q", got)
	}
	if got := q.Option("C"); got != "third" {
		t.Fatalf("continuation leaked into C: %q", got)
	}
	if q.Stem != "Pick one." {
		t.Fatalf("continuation leaked into stem: %q", q.Stem)
	}
}

// TestParseMissingRequiredField verifies a block without Answer is
// dropped with exactly one diagnostic.
func TestParseMissingRequiredField(t *testing.T) {
	control, _ := Parse(wellFormedBank)
	broken := strings.Replace(wellFormedBank, "Answer: B\n", "", 1)
	questions, diags := Parse(broken)
	if len(questions) != len(control)-1 {
		t.Fatalf("expected %d questions, got %d", len(control)-1, len(questions))
	}
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "Answer") {
		t.Fatalf("expected diagnostic to name the missing field, got %q", diags[0].Message)
	}
}

// TestParseDanglingAnswer verifies a record whose answer letter has no
// option is kept but flagged.
func TestParseDanglingAnswer(t *testing.T) {
	doc := `Problem: 3
Points: 4
Question: Choose.
A) yes
B) no
Answer: D
`
	questions, diags := Parse(doc)
	if len(questions) != 1 {
		t.Fatalf("expected question to be retained, got %d", len(questions))
	}
	if len(diags) != 1 || diags[0].QuestionID != "3" {
		t.Fatalf("expected one diagnostic for question 3, got %v", diags)
	}
	if questions[0].Answer != "D" {
		t.Fatalf("expected answer kept as D, got %q", questions[0].Answer)
	}
}

// TestParsePointsCoercion verifies decimal truncation and the zero
// default for unparseable points.
func TestParsePointsCoercion(t *testing.T) {
	cases := []struct {
		name      string
		points    string
		want      int
		wantDiags int
	}{
		{name: "integer", points: "10", want: 10},
		{name: "decimal truncates", points: "7.9", want: 7},
		{name: "garbage defaults to zero", points: "ten", want: 0, wantDiags: 1},
		{name: "empty defaults to zero", points: "", want: 0, wantDiags: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := "Problem: 1\nPoints: " + tc.points + "\nQuestion: Q\nA) x\nAnswer: A\n"
			questions, diags := Parse(doc)
			if len(questions) != 1 {
				t.Fatalf("expected 1 question, got %d", len(questions))
			}
			if questions[0].Points != tc.want {
				t.Fatalf("expected %d points, got %d", tc.want, questions[0].Points)
			}
			if len(diags) != tc.wantDiags {
				t.Fatalf("expected %d diagnostics, got %v", tc.wantDiags, diags)
			}
		})
	}
}

// TestParseZeroOptionsRetained verifies option-less records stay in the
// bank and read as malformed.
func TestParseZeroOptionsRetained(t *testing.T) {
	doc := `Problem: 9
Points: 3
Question: There are no options here.
Answer: A
`
	questions, diags := Parse(doc)
	if len(questions) != 1 {
		t.Fatalf("expected question to be retained, got %d", len(questions))
	}
	if !questions[0].Malformed() {
		t.Fatalf("expected question to be malformed")
	}
	if questions[0].Stem != "There are no options here." {
		t.Fatalf("unexpected stem: %q", questions[0].Stem)
	}
	if len(diags) != 1 {
		t.Fatalf("expected dangling-answer diagnostic, got %v", diags)
	}
}

// TestParseNonNumericIDKeepsDocumentOrder verifies the all-or-nothing
// sort fallback.
func TestParseNonNumericIDKeepsDocumentOrder(t *testing.T) {
	doc := `Problem: 2
Points: 1
Question: Q2
A) x
Answer: A

Problem: one
Points: 1
Question: Q1
A) x
Answer: A
`
	questions, diags := Parse(doc)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != "2" || questions[1].ID != "one" {
		t.Fatalf("expected document order, got %q, %q", questions[0].ID, questions[1].ID)
	}
	found := false
	for _, diag := range diags {
		if strings.Contains(diag.Message, "document order") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected sort fallback diagnostic, got %v", diags)
	}
}

// TestParsePreambleProducesDiagnostic verifies text before the first
// record marker is treated as an incomplete block.
func TestParsePreambleProducesDiagnostic(t *testing.T) {
	doc := "Chapter 2 review questions.\n\nProblem: 1\nPoints: 1\nQuestion: Q\nA) x\nAnswer: A\n"
	questions, diags := Parse(doc)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "incomplete block") {
		t.Fatalf("expected incomplete-block diagnostic, got %v", diags)
	}
}

// TestParseMultiLineField verifies non-field lines extend the open
// field, including lines that look like typoed field names.
func TestParseMultiLineField(t *testing.T) {
	doc := `Problem: 4
Points: 2
Question: First stem line.
Second stem line.
Hint: this is not a known field
A) only
Answer: A
Explanation: Line one.
Line two.
`
	questions, _ := Parse(doc)
	q := questions[0]
	if q.Stem != "First stem line.\nSecond stem line.\nHint: this is not a known field" {
		t.Fatalf("unexpected stem: %q", q.Stem)
	}
	if q.Explanation != "Line one.\nLine two." {
		t.Fatalf("unexpected explanation: %q", q.Explanation)
	}
}

// TestParseNonContiguousOptionLetters verifies any single uppercase
// letter is a valid option key.
func TestParseNonContiguousOptionLetters(t *testing.T) {
	doc := `Problem: 5
Points: 1
Question: Pick.
B) bee
E) ee
X) ex
Answer: X
`
	questions, diags := Parse(doc)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if got := strings.Join(questions[0].OptionKeys, ""); got != "BEX" {
		t.Fatalf("expected keys BEX, got %q", got)
	}
}

// TestParseIdempotent verifies re-parsing identical input yields an
// identical bank.
func TestParseIdempotent(t *testing.T) {
	first, firstDiags := Parse(wellFormedBank)
	second, secondDiags := Parse(wellFormedBank)
	if len(first) != len(second) || len(firstDiags) != len(secondDiags) {
		t.Fatalf("expected identical results")
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Stem != second[i].Stem || first[i].Answer != second[i].Answer {
			t.Fatalf("question %d differs between parses", i)
		}
	}
}
