package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampFormats(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	testCases := []struct {
		name string
		in   string
	}{
		{"spring offset", `"2024-05-01T12:30:00.000+00:00"`},
		{"rfc3339", `"2024-05-01T12:30:00Z"`},
		{"compact offset", `"2024-05-01T12:30:00.000+0000"`},
		{"no zone", `"2024-05-01T12:30:00"`},
		{"epoch millis", "1714566600000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, ts.UnmarshalJSON([]byte(tc.in)))
			assert.True(t, ts.Equal(want), "got %v", ts.Time)
		})
	}

	var ts Timestamp
	require.NoError(t, ts.UnmarshalJSON([]byte("null")))
	assert.True(t, ts.IsZero())
	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
}

func TestCommentDecodesNullParent(t *testing.T) {
	var comments []Comment
	body := `[{"id":1,"parentCommentId":null,"content":"a","author":"x","upVotes":0,"downVotes":0,"createdTime":"2024-05-01T12:30:00.000+00:00","replies":[]},
	          {"id":2,"parentCommentId":1,"content":"b","author":"y","upVotes":2,"downVotes":1,"createdTime":null}]`
	require.NoError(t, json.Unmarshal([]byte(body), &comments))
	require.Len(t, comments, 2)
	assert.True(t, comments[0].IsTopLevel())
	require.NotNil(t, comments[1].ParentCommentID)
	assert.EqualValues(t, 1, *comments[1].ParentCommentID)
}

func TestCommentBodyWireNames(t *testing.T) {
	parent := int64(7)
	b, err := json.Marshal(commentBody{BlogID: 3, UserID: 4, CommentID: &parent, Content: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"blogId":3,"userId":4,"commentId":7,"content":"hi"}`, string(b))

	b, err = json.Marshal(commentBody{BlogID: 3, UserID: 4, Content: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"blogId":3,"userId":4,"commentId":null,"content":"hi"}`, string(b))
}

func TestPostBodyCarriesAuthorName(t *testing.T) {
	b, err := json.Marshal(postBody{PostRequest: PostRequest{Title: "t", Content: "c", Categories: []string{"a"}, Tags: []string{}}, AuthorName: "ana"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","content":"c","categories":["a"],"tags":[],"authorName":"ana"}`, string(b))
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "[404] Blog not found", (&APIError{StatusCode: 404, Message: "Blog not found"}).Error())
	assert.Equal(t, "[500] Internal Server Error", (&APIError{StatusCode: 500}).Error())
}
