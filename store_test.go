package blog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copydataai/blog/posts"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test_blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	require.NotNil(t, s)
	require.NotNil(t, s.db)

	all, err := s.ListAllPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReplaceAllAndGetPost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	pub := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	mod := pub.Add(48 * time.Hour)
	post := posts.Post{
		Slug:        "test-post",
		Title:       "Test Post",
		Description: "A test post summary",
		Author:      "Tester",
		PubDatetime: pub,
		ModDatetime: mod,
		Tags:        []string{"go", "testing"},
		Featured:    true,
		OGImage:     "/public/og.png",
		Body:        "# Test Content",
		HTML:        "<h1>Test Content</h1>",
	}
	require.NoError(t, s.ReplaceAll(ctx, []posts.Post{post}))

	got, err := s.GetPost(ctx, "test-post")
	require.NoError(t, err)
	assert.Equal(t, post.Slug, got.Slug)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Description, got.Description)
	assert.Equal(t, post.Author, got.Author)
	assert.True(t, got.PubDatetime.Equal(pub))
	assert.True(t, got.ModDatetime.Equal(mod))
	assert.Equal(t, []string{"go", "testing"}, got.Tags)
	assert.True(t, got.Featured)
	assert.False(t, got.Draft)
	assert.Equal(t, post.OGImage, got.OGImage)
	assert.Equal(t, post.Body, got.Body)
	assert.Equal(t, post.HTML, got.HTML)
}

func TestReplaceAllSwapsSnapshot(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.ReplaceAll(ctx, []posts.Post{
		{Slug: "old-1", Title: "Old 1", PubDatetime: now},
		{Slug: "old-2", Title: "Old 2", PubDatetime: now},
	}))
	require.NoError(t, s.ReplaceAll(ctx, []posts.Post{
		{Slug: "new", Title: "New", PubDatetime: now},
	}))

	all, err := s.ListAllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.GetPost(ctx, "old-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceAllRollsBackOnDuplicate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.ReplaceAll(ctx, []posts.Post{{Slug: "kept", Title: "Kept", PubDatetime: now}}))
	err := s.ReplaceAll(ctx, []posts.Post{
		{Slug: "dup", Title: "A", PubDatetime: now},
		{Slug: "dup", Title: "B", PubDatetime: now},
	})
	require.Error(t, err)

	got, err := s.GetPost(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Title)
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPost(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPostIncludesDrafts(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, []posts.Post{
		{Slug: "draft-post", Title: "Draft", PubDatetime: time.Now(), Draft: true},
	}))

	got, err := s.GetPost(ctx, "draft-post")
	require.NoError(t, err)
	assert.True(t, got.Draft)
	assert.True(t, got.ModDatetime.IsZero())
}

func TestListAllPostsKeepsStorageOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	in := []posts.Post{
		{Slug: "b", Title: "B", PubDatetime: base},
		{Slug: "a", Title: "A", PubDatetime: base.Add(time.Hour), Draft: true},
		{Slug: "c", Title: "C", PubDatetime: base.Add(2 * time.Hour)},
	}
	require.NoError(t, s.ReplaceAll(ctx, in))

	got, err := s.ListAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Slug)
	assert.Equal(t, "a", got[1].Slug)
	assert.Equal(t, "c", got[2].Slug)
}

func TestTagsRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	in := []posts.Post{
		{Slug: "comma", Title: "Comma", PubDatetime: now, Tags: []string{"Hello, World", "go"}},
		{Slug: "quoted", Title: "Quoted", PubDatetime: now, Tags: []string{`say "hi"`, "[brackets]"}},
		{Slug: "untagged", Title: "Untagged", PubDatetime: now},
	}
	require.NoError(t, s.ReplaceAll(ctx, in))

	all, err := s.ListAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Hello, World", "go"}, all[0].Tags)
	assert.Equal(t, []string{`say "hi"`, "[brackets]"}, all[1].Tags)
	assert.Empty(t, all[2].Tags)

	tagged := posts.PostsByTag(posts.SortedPosts(all), "hello-world")
	require.Len(t, tagged, 1)
	assert.Equal(t, "comma", tagged[0].Slug)
}

func TestDecodeTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`["go","web"]`, []string{"go", "web"}},
		{`["a, b"]`, []string{"a, b"}},
		{`[]`, nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := decodeTags(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := decodeTags(",go,web,")
	assert.Error(t, err)
}

func TestEncodeTags(t *testing.T) {
	got, err := encodeTags([]string{"go", "Hello, World"})
	require.NoError(t, err)
	assert.Equal(t, `["go","Hello, World"]`, got)

	got, err = encodeTags(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}
