package redis

import "github.com/webcore/framework/pkg/errors"

var newRedisCode = errors.WithPrefix("REDIS")

var (
	ErrPing        = newRedisCode().New("redis at {{.addr}} is unreachable")
	ErrKeyNotFound = newRedisCode().New("key {{.key}} not found")
	ErrStore       = newRedisCode().New("redis {{.op}} {{.key}} failed")
	ErrClose       = newRedisCode().New("failed to close redis client")
)
