package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imasker/warden/utils"
)

func TestParseRedisURL(t *testing.T) {
	url := "redis://:xxx@redis-a.example.com:6379/1"
	opt, err := utils.ParseRedisURL(url)
	assert.NoError(t, err)
	assert.Equal(t, "xxx", opt.Password)
	assert.Equal(t, []string{"redis-a.example.com:6379"}, opt.Addrs)
	assert.Equal(t, 1, opt.DB)

	url = "redis://:xxx@redis-a.example.com,redis-b.example.com:6379/1"
	opt, err = utils.ParseRedisURL(url)
	assert.NoError(t, err)
	assert.Equal(t, []string{"redis-a.example.com", "redis-b.example.com:6379"}, opt.Addrs)

	url = "redis://:xxx@redis-a.example.com:6380,redis-b.example.com:6379/1"
	opt, err = utils.ParseRedisURL(url)
	assert.NoError(t, err)
	assert.Equal(t, []string{"redis-a.example.com:6380", "redis-b.example.com:6379"}, opt.Addrs)

	url = "rediss://:xxx@redis-a.example.com:6379,redis-b.example.com:6379/1?read_timeout=100"
	opt, err = utils.ParseRedisURL(url)
	assert.NoError(t, err)
	assert.Equal(t, []string{"redis-a.example.com:6379", "redis-b.example.com:6379"}, opt.Addrs)
	assert.Equal(t, 100*time.Second, opt.ReadTimeout)
	assert.NotNil(t, opt.TLSConfig)

	url = "redigo://:xxx@redis-a.example.com:6379/2"
	opt, err = utils.ParseRedisURL(url)
	assert.NoError(t, err)
	assert.Equal(t, []string{"redis-a.example.com:6379"}, opt.Addrs)
	assert.Equal(t, 2, opt.DB)

	url = "redis://[::1]:6379/0"
	opt, err = utils.ParseRedisURL(url)
	assert.NoError(t, err)
	assert.Equal(t, []string{"[::1]:6379"}, opt.Addrs)

	url = "redis://:xxx@redis-a.example.com:xxx/1"
	_, err = utils.ParseRedisURL(url)
	assert.Error(t, err)
}
