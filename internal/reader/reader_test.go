// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/passmigrate/pkg/types"
)

// drain reads records until EOF or error.
func drain(t *testing.T, r *Reader) ([]types.SourceRecord, error) {
	t.Helper()
	var recs []types.SourceRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

func TestNew_HeaderValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "truekey header with login alias",
			input: "kind,name,url,login,password,note\n",
		},
		{
			name:  "plain header",
			input: "title,url,username,password,notes\n",
		},
		{
			name:  "header with utf-8 bom",
			input: "\ufeffname,url,login,password,note\n",
		},
		{
			name:    "no password column",
			input:   "name,url,login,note\n",
			wantErr: true,
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMissingPasswordColumn)
				var mErr *MalformedError
				assert.ErrorAs(t, err, &mErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNext_SingleLineRecords(t *testing.T) {
	src := "name,url,login,password,note\n" +
		"Example Site,https://example.com,user1,Secr3t!,just a note\n" +
		"Other,https://other.io,user2,hunter2,\n"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, types.SourceRecord{
		Kind:     types.KindLogin,
		Title:    "Example Site",
		URL:      "https://example.com",
		Username: "user1",
		Password: "Secr3t!",
		Notes:    "just a note",
	}, recs[0])
	assert.Equal(t, "Other", recs[1].Title)
	assert.Empty(t, recs[1].Notes)
}

func TestNext_MultilineNotes(t *testing.T) {
	// One logical record spanning three physical lines inside the quoted
	// notes field.
	src := "name,url,login,password,note\n" +
		"Bank,https://bank.example,alice,pw123,\"line one\n" +
		"line two\n" +
		"line three\"\n" +
		"After,https://after.example,bob,pw456,plain\n"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Bank", recs[0].Title)
	assert.Equal(t, "line one\nline two\nline three", recs[0].Notes)
	assert.Equal(t, "After", recs[1].Title)
}

func TestNext_EscapedQuotes(t *testing.T) {
	src := "name,url,login,password,note\n" +
		"Quoted,https://q.example,carol,pw,\"she said \"\"hi\"\" to me\"\n"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, `she said "hi" to me`, recs[0].Notes)
}

func TestNext_EscapedQuoteDoesNotOpenMultiline(t *testing.T) {
	// "" contributes a full pair, so parity stays even and the record must
	// not swallow the following line.
	src := "name,url,login,password,note\n" +
		"A,https://a.example,u1,pw,\"note with \"\"quotes\"\"\"\n" +
		"B,https://b.example,u2,pw2,second\n"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, `note with "quotes"`, recs[0].Notes)
}

func TestNext_UnterminatedQuoteAtEOF(t *testing.T) {
	src := "name,url,login,password,note\n" +
		"Good,https://g.example,u1,pw,fine\n" +
		"Broken,https://b.example,u2,pw2,\"never closes\n" +
		"still going\n"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)

	var mErr *MalformedError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, 1, mErr.Record, "error should name the last complete record index")
	assert.Len(t, recs, 1)
}

func TestNext_BlankLinesBetweenRecords(t *testing.T) {
	src := "name,url,login,password,note\n" +
		"One,https://one.example,u1,pw1,n1\n" +
		"\n" +
		"Two,https://two.example,u2,pw2,n2\n" +
		"\n"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "One", recs[0].Title)
	assert.Equal(t, "Two", recs[1].Title)
}

func TestNext_RaggedRows(t *testing.T) {
	tests := []struct {
		name      string
		row       string
		wantNotes string
		wantPass  string
	}{
		{
			name:     "short row padded",
			row:      "Short,https://s.example,u,pw",
			wantPass: "pw",
		},
		{
			name:      "surplus commas folded into trailing notes",
			row:       "Long,https://l.example,u,pw,first,second,third",
			wantNotes: "first,second,third",
			wantPass:  "pw",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "name,url,login,password,note\n" + tt.row + "\n"
			r, err := New(strings.NewReader(src))
			require.NoError(t, err)

			recs, err := drain(t, r)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, tt.wantPass, recs[0].Password)
			assert.Equal(t, tt.wantNotes, recs[0].Notes)
		})
	}
}

func TestNext_NoteKind(t *testing.T) {
	src := "kind,name,url,login,password,note\n" +
		"note,Wifi Codes,,,,\"guest: abc123\"\n" +
		"login,Site,https://s.example,u,pw,\n"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.True(t, recs[0].IsNote())
	assert.Equal(t, "Wifi Codes", recs[0].Title)
	assert.Equal(t, "guest: abc123", recs[0].Notes)
	assert.False(t, recs[1].IsNote())
}

func TestNext_CRLFAndMissingFinalNewline(t *testing.T) {
	src := "name,url,login,password,note\r\n" +
		"One,https://one.example,u1,pw1,n1\r\n" +
		"Two,https://two.example,u2,pw2,n2"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "n2", recs[1].Notes)
}

func TestNext_ExhaustedReaderStaysExhausted(t *testing.T) {
	r, err := New(strings.NewReader("name,url,login,password,note\n"))
	require.NoError(t, err)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNext_QuotedFieldWithCommas(t *testing.T) {
	src := "name,url,login,password,note\n" +
		"Commas,https://c.example,u,pw,\"one, two, three\"\n"

	r, err := New(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := drain(t, r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "one, two, three", recs[0].Notes)
}
