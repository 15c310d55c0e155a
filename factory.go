// Package warden wires lock backends and confirmation code generators from configuration.
package warden

import (
	"fmt"
	"strings"

	"github.com/imasker/warden/codes"
	"github.com/imasker/warden/config"
	filelock "github.com/imasker/warden/locks/file"
	lockiface "github.com/imasker/warden/locks/iface"
	"github.com/imasker/warden/locks/keyed"
	"github.com/imasker/warden/locks/noop"
	redislock "github.com/imasker/warden/locks/redis"
	redigolock "github.com/imasker/warden/locks/redigo"
	"github.com/imasker/warden/log"
	"github.com/imasker/warden/utils"
)

// LockFactory creates a new object of iface.Locker from cnf.Lock.
// An empty URL selects the process-wide noop lock.
func LockFactory(cnf *config.Config) (lockiface.Locker, error) {
	lock, err := lockFactory(cnf)
	if err != nil {
		return nil, err
	}
	log.Logger.Info("Using %s lock at %s", lock.Name(), utils.RedactURL(cnf.Lock))
	return lock, nil
}

func lockFactory(cnf *config.Config) (lockiface.Locker, error) {
	switch {
	case cnf.Lock == "" || strings.HasPrefix(cnf.Lock, "noop://"):
		return noop.New(), nil
	case strings.HasPrefix(cnf.Lock, "local://"):
		return keyed.New(), nil
	case strings.HasPrefix(cnf.Lock, "redis://") || strings.HasPrefix(cnf.Lock, "rediss://"):
		return redislock.New(cnf)
	case strings.HasPrefix(cnf.Lock, "redigo://"):
		return redigolock.New(cnf), nil
	case strings.HasPrefix(cnf.Lock, "file://"):
		return filelock.New(cnf)
	}

	return nil, fmt.Errorf("factory failed with lock url: %v", cnf.Lock)
}

// CodeGeneratorFactory creates a confirmation code generator from cnf.Code
func CodeGeneratorFactory(cnf *config.Config) (*codes.Generator, error) {
	return codes.NewFromConfig(cnf.Code)
}
