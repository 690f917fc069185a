package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"comment_wall/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginCommentFlow(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, "/login", app.register(t, "alice", "a@x.com", "p1").Header().Get("Location"))
	cookies := app.login(t, "alice", "p1")

	rec := app.postForm(t, "/add_comment", url.Values{"content": {"hello"}}, cookies)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// The wall shows the comment as the newest entry
	rec = app.get(t, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hello")

	var comment domain.Comment
	require.NoError(t, app.db.First(&comment).Error)
	assert.Equal(t, "alice", comment.Username)
	assert.False(t, comment.Timestamp.IsZero(), "timestamp is server-assigned")
}

func TestAddCommentRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/add_comment", url.Values{"content": {"hi"}}, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, app.db.Model(&domain.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddCommentEmptyRejected(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "p1")
	cookies := app.login(t, "alice", "p1")

	rec := app.postForm(t, "/add_comment", url.Values{}, cookies)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, app.db.Model(&domain.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "no record for an empty submission")
}

func TestAddCommentOverlongContentRejected(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "p1")
	cookies := app.login(t, "alice", "p1")

	rec := app.postForm(t, "/add_comment", url.Values{"content": {strings.Repeat("x", 201)}}, cookies)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, app.db.Model(&domain.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddCommentInvalidImageRejected(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "p1")
	cookies := app.login(t, "alice", "p1")

	rec := app.postMultipart(t, "/add_comment", map[string]string{"content": "look"},
		&upload{field: "image", filename: "virus.exe", contentType: "application/octet-stream", content: "MZ"},
		cookies)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// The whole submission is rejected, text included
	var count int64
	require.NoError(t, app.db.Model(&domain.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddCommentWithImage(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "p1")
	cookies := app.login(t, "alice", "p1")

	rec := app.postMultipart(t, "/add_comment", nil,
		&upload{field: "image", filename: "cat.png", contentType: "image/png", content: "png-ish"},
		cookies)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var comment domain.Comment
	require.NoError(t, app.db.First(&comment).Error)
	assert.Equal(t, "cat.png", comment.Image)
	assert.Empty(t, comment.Content, "content may be empty when an image is attached")
}

func TestWallOrderedNewestFirst(t *testing.T) {
	app := newTestApp(t)

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"first", "second", "third"} {
		comment := domain.Comment{Username: "alice", Content: text}
		require.NoError(t, app.db.Create(&comment).Error)
		// Space the timestamps out explicitly
		require.NoError(t, app.db.Model(&comment).Update("timestamp", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	rec := app.get(t, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, "third"), strings.Index(body, "second"))
	assert.Less(t, strings.Index(body, "second"), strings.Index(body, "first"))
}

func TestWallViewIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "p1")
	cookies := app.login(t, "alice", "p1")
	app.postForm(t, "/add_comment", url.Values{"content": {"stable"}}, cookies)

	first := app.get(t, "/", nil).Body.String()
	second := app.get(t, "/", nil).Body.String()
	assert.Equal(t, first, second, "two reads without writes return identical data")
}
