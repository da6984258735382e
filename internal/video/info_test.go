package video

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		require.NoError(t, r.ParseForm())

		assert.Equal(t, "3601811", r.PostForm.Get("id"))
		assert.Equal(t, "true", r.PostForm.Get("playTypeHls"))
		assert.Equal(t, oauthConstantVal1, r.PostForm.Get(oauthConstantKey1))
		assert.Equal(t, oauthConstantVal2, r.PostForm.Get(oauthConstantKey2))

		key := r.Header.Get("oauth-consumer-key")
		nonce := r.Header.Get("oauth-nonce")

		assert.Equal(t, "CONSUMER-KEY", key)
		assert.NotEmpty(t, nonce)
		assert.Equal(t, oauthPath, r.Header.Get("oauth-path"))
		assert.Equal(t, Signature(3601811, nonce, key), r.Header.Get("oauth-signature"),
			"the signature must verify against the submitted nonce and key")

		writeJSON(t, w, Info{
			ID:       3601811,
			VideName: "Week 1",
			VideoPlayResponseVoList: []PlayInfo{
				{ID: 1, RtmpURLHdv: "https://cdn.example.com/v1.mp4"},
			},
		})
	}))
	c.videoInfoURL = srv.URL + "/getvideoinfos"

	info, err := c.GetInfo(context.Background(), 3601811, "CONSUMER-KEY")
	require.NoError(t, err)

	assert.Equal(t, "Week 1", info.VideName)
	require.Len(t, info.VideoPlayResponseVoList, 1)
	assert.Equal(t, "https://cdn.example.com/v1.mp4", info.VideoPlayResponseVoList[0].RtmpURLHdv)
}

func TestGetInfo_ServerError(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	c.videoInfoURL = srv.URL + "/getvideoinfos"

	_, err := c.GetInfo(context.Background(), 1, "KEY")
	assert.Error(t, err)
}
