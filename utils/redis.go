package utils

import (
	"regexp"
	"strings"

	"github.com/go-redis/redis/v8"
)

var bracketedAddrs = regexp.MustCompile(`\[(.*?)\](:[0-9]?)+`)

// ParseRedisURL parse redis url and return redis.UniversalOptions
// redigo:// is accepted as an alias of redis:// so one URL style serves both clients
func ParseRedisURL(url string) (*redis.UniversalOptions, error) {
	// redis://:pwd@host:port/db
	if strings.HasPrefix(url, "redigo://") {
		url = "redis://" + strings.TrimPrefix(url, "redigo://")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	var addrs []string
	// [h1,h2]:port lists cluster nodes; a single bracketed IPv6 literal keeps its port
	if matchArr := bracketedAddrs.FindStringSubmatch(opt.Addr); matchArr != nil && strings.Contains(matchArr[1], ",") {
		addrs = strings.Split(matchArr[1], ",")
	} else if strings.HasPrefix(opt.Addr, "[") {
		addrs = []string{opt.Addr}
	} else {
		addrs = strings.Split(opt.Addr, ",")
	}
	return &redis.UniversalOptions{
		Addrs:              addrs,
		Username:           opt.Username,
		Password:           opt.Password,
		DB:                 opt.DB,
		MinRetryBackoff:    opt.MinRetryBackoff,
		MaxRetryBackoff:    opt.MaxRetryBackoff,
		MaxRetries:         opt.MaxRetries,
		DialTimeout:        opt.DialTimeout,
		ReadTimeout:        opt.ReadTimeout,
		WriteTimeout:       opt.WriteTimeout,
		PoolFIFO:           opt.PoolFIFO,
		PoolSize:           opt.PoolSize,
		MinIdleConns:       opt.MinIdleConns,
		MaxConnAge:         opt.MaxConnAge,
		PoolTimeout:        opt.PoolTimeout,
		IdleTimeout:        opt.IdleTimeout,
		IdleCheckFrequency: opt.IdleCheckFrequency,
		TLSConfig:          opt.TLSConfig,
	}, nil
}
