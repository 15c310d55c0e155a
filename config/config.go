package config

import (
	"time"
)

const (
	// DefaultLockExpireIn is how long, in seconds, a distributed lock lives if its holder never releases it
	DefaultLockExpireIn = 8
	// DefaultCodeAlphabet is the set of symbols confirmation codes are drawn from
	DefaultCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultCodeLength is the number of symbols in a confirmation code
	DefaultCodeLength = 6
)

var (
	// Start with sensible default values
	defaultCnf = &Config{
		Lock:           "noop://",
		LockPrefix:     "warden_lock_",
		LockExpireIn:   DefaultLockExpireIn,
		LockTries:      32,
		LockRetryDelay: 100,
		Redis: &RedisConfig{
			MaxIdle:        3,
			MaxActive:      10,
			IdleTimeout:    240,
			ReadTimeout:    15,
			WriteTimeout:   15,
			ConnectTimeout: 15,
		},
		Code: &CodeConfig{
			Length:   DefaultCodeLength,
			Alphabet: DefaultCodeAlphabet,
		},
	}

)

// Config holds all configuration for our program
type Config struct {
	// Lock selects the lock backend: noop://, local://, redis://, rediss://, redigo:// or file://
	Lock       string `yaml:"lock" envconfig:"LOCK"`
	LockPrefix string `yaml:"lock_prefix" envconfig:"LOCK_PREFIX"`
	// LockExpireIn is the lease of a distributed lock in seconds
	LockExpireIn int `yaml:"lock_expire_in" envconfig:"LOCK_EXPIRE_IN"`
	// LockTries bounds how many times a distributed lock is attempted before giving up
	LockTries int `yaml:"lock_tries" envconfig:"LOCK_TRIES"`
	// LockRetryDelay is the pause in milliseconds between attempts
	LockRetryDelay int          `yaml:"lock_retry_delay" envconfig:"LOCK_RETRY_DELAY"`
	Redis          *RedisConfig `yaml:"redis" envconfig:"REDIS"`
	Code           *CodeConfig  `yaml:"code" envconfig:"CODE"`
	// Database is the DSN used by test helpers, e.g. postgres://... or ramsql://name
	Database string `yaml:"database" envconfig:"DATABASE"`
}

// RedisConfig tunes the redigo pool and sentinel support
type RedisConfig struct {
	// Maximum number of idle connections in the pool.
	// Default: 3
	MaxIdle int `yaml:"max_idle" envconfig:"MAX_IDLE"`

	// Maximum number of connections allocated by the pool at a given time.
	// When zero, there is no limit on the number of connections in the pool.
	// Default: 10
	MaxActive int `yaml:"max_active" envconfig:"MAX_ACTIVE"`

	// Close connections after remaining idle for this duration in seconds.
	// Default: 240
	IdleTimeout int `yaml:"max_idle_timeout" envconfig:"IDLE_TIMEOUT"`

	// If Wait is true and the pool is at the MaxActive limit, then Get() waits
	// for a connection to be returned to the pool before returning
	Wait bool `yaml:"wait" envconfig:"WAIT"`

	// ReadTimeout, WriteTimeout and ConnectTimeout are in seconds. Default: 15
	ReadTimeout    int `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout   int `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ConnectTimeout int `yaml:"connect_timeout" envconfig:"CONNECT_TIMEOUT"`

	// MasterName specifies a redis master name in order to configure a sentinel-backed redis FailoverClient
	MasterName string `yaml:"master_name" envconfig:"MASTER_NAME"`
}

// CodeConfig ...
type CodeConfig struct {
	Length   int    `yaml:"length" envconfig:"LENGTH"`
	Alphabet string `yaml:"alphabet" envconfig:"ALPHABET"`
	// Seed makes the generator deterministic when non-zero
	Seed int64 `yaml:"seed" envconfig:"SEED"`
}

// LockExpiry returns LockExpireIn as a duration
func (c *Config) LockExpiry() time.Duration {
	return time.Duration(c.LockExpireIn) * time.Second
}

// RetryDelay returns LockRetryDelay as a duration
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.LockRetryDelay) * time.Millisecond
}

// Default returns a fresh copy of the default configuration
func Default() *Config {
	return clone(defaultCnf)
}

// fillSections restores default sections a loader left nil, as yaml does for a key with no value
func fillSections(cnf *Config) *Config {
	if cnf.Redis == nil {
		redis := *defaultCnf.Redis
		cnf.Redis = &redis
	}
	if cnf.Code == nil {
		code := *defaultCnf.Code
		cnf.Code = &code
	}
	return cnf
}

// clone copies the nested sections too, so loaders never write through to defaultCnf
func clone(src *Config) *Config {
	cnf := new(Config)
	*cnf = *src
	if src.Redis != nil {
		redis := *src.Redis
		cnf.Redis = &redis
	}
	if src.Code != nil {
		code := *src.Code
		cnf.Code = &code
	}
	return cnf
}
