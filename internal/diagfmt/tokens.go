package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"bwqlint/internal/token"
)

type TokenOutput struct {
	Kind     string   `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Value    string   `json:"value,omitempty"`
	Distance uint32   `json:"distance,omitempty"`
	Span     SpanJSON `json:"span"`
}

// FormatTokensPretty prints one token per line.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-14s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.Value != "" && tok.Value != tok.Text {
			fmt.Fprintf(w, " value=%q", tok.Value)
		}
		if tok.Kind == token.Near || tok.Kind == token.NearForward {
			fmt.Fprintf(w, " distance=%d", tok.Distance)
		}
		fmt.Fprintf(w, " at %s-%s\n", tok.Span.Start, tok.Span.End)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: makeSpan(tok.Span),
		}
		if tok.Value != tok.Text {
			out.Value = tok.Value
		}
		if tok.Kind == token.Near || tok.Kind == token.NearForward {
			out.Distance = tok.Distance
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
