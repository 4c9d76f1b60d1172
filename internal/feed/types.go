// ABOUTME: Wire types for the Mastodon account lookup and statuses endpoints
// ABOUTME: Decoded with easyjson lexers, no reflection on the fetch path

package feed

import (
	"github.com/mailru/easyjson/jlexer"
)

// accountRef is the subset of /api/v1/accounts/lookup we need.
type accountRef struct {
	ID   string
	Acct string
}

// status is one entry from /api/v1/accounts/{id}/statuses. Boosts carry an
// empty content and the boosted status in Reblog.
type status struct {
	ID        string
	CreatedAt string
	Content   string
	Reblog    *status
}

type statusList []status

func (out *accountRef) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			out.ID = in.String()
		case "acct":
			out.Acct = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (out *status) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			out.ID = in.String()
		case "created_at":
			out.CreatedAt = in.String()
		case "content":
			out.Content = in.String()
		case "reblog":
			out.Reblog = new(status)
			out.Reblog.UnmarshalEasyJSON(in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (out *statusList) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		in.Skip()
		*out = nil
	} else {
		in.Delim('[')
		if *out == nil {
			*out = make(statusList, 0, 8)
		}
		for !in.IsDelim(']') {
			var v status
			v.UnmarshalEasyJSON(in)
			*out = append(*out, v)
			in.WantComma()
		}
		in.Delim(']')
	}
	if isTopLevel {
		in.Consumed()
	}
}
