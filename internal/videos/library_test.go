package videos

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	return NewLibrary(filepath.Join(t.TempDir(), "videos_db.json"))
}

func TestLibrary_addAndList(t *testing.T) {
	library := newTestLibrary(t)

	assert.Empty(t, library.VideosFor("hip_thrust"))

	require.NoError(t, library.AddVideo("hip_thrust", "uploads/hip_thrust_a.mp4", "user"))
	require.NoError(t, library.AddVideo("hip_thrust", "uploads/hip_thrust_b.mp4", "coach"))
	require.NoError(t, library.AddVideo("kickbacks", "uploads/kickbacks_a.mp4", "user"))

	videos := library.VideosFor("hip_thrust")
	require.Len(t, videos, 2)
	assert.Equal(t, "coach", videos[1].Uploader)
	assert.Zero(t, videos[0].Rating)
	assert.Zero(t, videos[0].Votes)
	assert.False(t, videos[0].Flagged)
	assert.NotEmpty(t, videos[0].UploadedAt)

	assert.Len(t, library.VideosFor("kickbacks"), 1)
}

func TestLibrary_rate(t *testing.T) {
	library := newTestLibrary(t)
	require.NoError(t, library.AddVideo("hip_thrust", "uploads/hip_thrust_a.mp4", "user"))

	// first vote, a like: rating jumps to 5
	require.NoError(t, library.Rate("hip_thrust", "uploads/hip_thrust_a.mp4", RatingLike))
	videos := library.VideosFor("hip_thrust")
	require.Len(t, videos, 1)
	assert.Equal(t, 5.0, videos[0].Rating)
	assert.Equal(t, 1, videos[0].Votes)

	// a dislike drags the average down but the vote count only grows
	require.NoError(t, library.Rate("hip_thrust", "uploads/hip_thrust_a.mp4", RatingDislike))
	videos = library.VideosFor("hip_thrust")
	assert.Equal(t, 3.0, videos[0].Rating)
	assert.Equal(t, 2, videos[0].Votes)

	err := library.Rate("hip_thrust", "uploads/nope.mp4", RatingLike)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	err = library.Rate("nope", "uploads/hip_thrust_a.mp4", RatingLike)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestLibrary_flag(t *testing.T) {
	library := newTestLibrary(t)
	require.NoError(t, library.AddVideo("hip_thrust", "uploads/hip_thrust_a.mp4", "user"))

	require.NoError(t, library.Flag("hip_thrust", "uploads/hip_thrust_a.mp4"))
	videos := library.VideosFor("hip_thrust")
	require.Len(t, videos, 1)
	assert.True(t, videos[0].Flagged)

	assert.ErrorIs(t, library.Flag("hip_thrust", "uploads/nope.mp4"), ErrVideoNotFound)
}

func TestLibrary_topVideos(t *testing.T) {
	library := newTestLibrary(t)
	require.NoError(t, library.AddVideo("hip_thrust", "uploads/low.mp4", "user"))
	require.NoError(t, library.AddVideo("hip_thrust", "uploads/high.mp4", "user"))
	require.NoError(t, library.AddVideo("hip_thrust", "uploads/mid.mp4", "user"))

	require.NoError(t, library.Rate("hip_thrust", "uploads/high.mp4", RatingLike))
	require.NoError(t, library.Rate("hip_thrust", "uploads/mid.mp4", RatingLike))
	require.NoError(t, library.Rate("hip_thrust", "uploads/mid.mp4", RatingDislike))
	require.NoError(t, library.Rate("hip_thrust", "uploads/low.mp4", RatingDislike))

	top := library.TopVideos("hip_thrust", 2)
	require.Len(t, top, 2)
	assert.Equal(t, "uploads/high.mp4", top[0].Path)
	assert.Equal(t, "uploads/mid.mp4", top[1].Path)
}
