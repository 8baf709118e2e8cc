// ABOUTME: Hot-path wire types with easyjson encoders (no reflection)
// ABOUTME: Upload results, speech segments, sign-in payloads and import progress lines

package api

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

var (
	_ easyjson.Unmarshaler = (*UploadResult)(nil)
	_ easyjson.Unmarshaler = (*SpeechSegments)(nil)
	_ easyjson.Marshaler   = Credentials{}
	_ easyjson.Unmarshaler = (*SignInResult)(nil)
	_ easyjson.Unmarshaler = (*ImportProgress)(nil)
)

// UploadResult is the /api/file/upload response.
type UploadResult struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (v *UploadResult) UnmarshalEasyJSON(in *jlexer.Lexer) {
	top := in.IsStart()
	if in.IsNull() {
		if top {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "filePath":
			v.FilePath = in.String()
		case "fileName":
			v.FileName = in.String()
		case "type":
			v.Type = in.String()
		case "size":
			v.Size = in.Int64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if top {
		in.Consumed()
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *UploadResult) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	v.UnmarshalEasyJSON(&r)
	return r.Error()
}

// SpeechSegment is one transcript chunk returned by speech-to-text.
type SpeechSegment struct {
	PageContent string `json:"pageContent"`
}

// SpeechSegments is the ai.speechToText result.
type SpeechSegments []SpeechSegment

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (v *SpeechSegments) UnmarshalEasyJSON(in *jlexer.Lexer) {
	top := in.IsStart()
	if in.IsNull() {
		in.Skip()
		*v = nil
	} else {
		in.Delim('[')
		if *v == nil {
			*v = make(SpeechSegments, 0, 1)
		}
		for !in.IsDelim(']') {
			var seg SpeechSegment
			if in.IsNull() {
				in.Skip()
			} else {
				in.Delim('{')
				for !in.IsDelim('}') {
					key := in.UnsafeFieldName(false)
					in.WantColon()
					if in.IsNull() {
						in.Skip()
						in.WantComma()
						continue
					}
					switch key {
					case "pageContent":
						seg.PageContent = in.String()
					default:
						in.SkipRecursive()
					}
					in.WantComma()
				}
				in.Delim('}')
			}
			*v = append(*v, seg)
			in.WantComma()
		}
		in.Delim(']')
	}
	if top {
		in.Consumed()
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *SpeechSegments) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	v.UnmarshalEasyJSON(&r)
	return r.Error()
}

// Text returns the first segment's content, or "".
func (v SpeechSegments) Text() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].PageContent
}

// Credentials is the sign-in request body.
type Credentials struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CallbackURL string `json:"callbackUrl,omitempty"`
	Redirect    bool   `json:"redirect"`
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (v Credentials) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawByte('{')
	out.RawString(`"username":`)
	out.String(v.Username)
	out.RawString(`,"password":`)
	out.String(v.Password)
	if v.CallbackURL != "" {
		out.RawString(`,"callbackUrl":`)
		out.String(v.CallbackURL)
	}
	out.RawString(`,"redirect":`)
	out.Bool(v.Redirect)
	out.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (v Credentials) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	v.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// SignInResult is the credentials callback response.
type SignInResult struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Status int    `json:"status"`
	URL    string `json:"url"`
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (v *SignInResult) UnmarshalEasyJSON(in *jlexer.Lexer) {
	top := in.IsStart()
	if in.IsNull() {
		if top {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "ok":
			v.OK = in.Bool()
		case "error":
			v.Error = in.String()
		case "status":
			v.Status = in.Int()
		case "url":
			v.URL = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if top {
		in.Consumed()
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *SignInResult) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	v.UnmarshalEasyJSON(&r)
	return r.Error()
}

// ImportProgress is one NDJSON line of the import task stream.
type ImportProgress struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// Done reports whether this line ends the stream.
func (v ImportProgress) Done() bool {
	return v.Type == "done" || v.Type == "error"
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (v *ImportProgress) UnmarshalEasyJSON(in *jlexer.Lexer) {
	top := in.IsStart()
	if in.IsNull() {
		if top {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "type":
			v.Type = in.String()
		case "content":
			v.Content = in.String()
		case "progress":
			in.Delim('{')
			for !in.IsDelim('}') {
				pk := in.UnsafeFieldName(false)
				in.WantColon()
				switch pk {
				case "current":
					v.Current = in.Int()
				case "total":
					v.Total = in.Int()
				default:
					in.SkipRecursive()
				}
				in.WantComma()
			}
			in.Delim('}')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if top {
		in.Consumed()
	}
}
