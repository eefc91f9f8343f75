// Package token defines lexical token kinds for boolean search queries.
// Invariants:
//   - Token.Text is the exact slice of the query addressed by Token.Span.
//   - Token.Value carries the decoded payload: word text, phrase body without
//     quotes, hashtag/mention without the sigil, comment body.
//   - Near and NearForward carry their distance in Token.Distance.
//   - EOF is always the last token and has a zero-width span.
//   - Whitespace tokens are only produced on request and never reach the parser.
package token
