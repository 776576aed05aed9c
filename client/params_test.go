package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParamsOmitsUnsetValues(t *testing.T) {
	params := Params{
		"search":    "",
		"status":    nil,
		"page":      1,
		"published": false,
	}

	values := params.Values()
	assert.False(t, values.Has("search"))
	assert.False(t, values.Has("status"))
	assert.Equal(t, "1", values.Get("page"))
	assert.Equal(t, "false", values.Get("published"))
}

func TestParamsEncodeIsOrderIndependent(t *testing.T) {
	a := Params{"page": 1, "limit": 10, "sortBy": "publishedDate"}
	b := Params{"sortBy": "publishedDate", "limit": 10, "page": 1}

	assert.Equal(t, a.Encode(), b.Encode())
	assert.Equal(t, "limit=10&page=2&sortBy=views", Params{"sortBy": "views", "page": 2, "limit": 10}.Encode())
}

func TestParamsEmptyEncodesEmpty(t *testing.T) {
	assert.Empty(t, Params{}.Encode())
	assert.Empty(t, Params(nil).Encode())
	assert.Empty(t, Params{"search": "", "tag": nil}.Encode())
}

func TestParamsStringify(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	params := Params{
		"from":  ts,
		"zero":  time.Time{},
		"ratio": 1.5,
		"count": int64(7),
	}

	values := params.Values()
	assert.Equal(t, "2024-03-01T12:00:00Z", values.Get("from"))
	assert.False(t, values.Has("zero"))
	assert.Equal(t, "1.5", values.Get("ratio"))
	assert.Equal(t, "7", values.Get("count"))
}
