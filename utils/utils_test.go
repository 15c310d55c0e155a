package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imasker/warden/utils"
)

func TestGetLockName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "warden_lock_orders", utils.GetLockName("", "orders"))
	assert.Equal(t, "app_orders", utils.GetLockName("app_", "orders"))
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "redis://localhost:6379", utils.RedactURL("redis://:password@localhost:6379/0"))
	assert.Equal(t, "file:///var/lock/warden", utils.RedactURL("file:///var/lock/warden"))
}

func TestGenerateID(t *testing.T) {
	t.Parallel()

	id, err := utils.GenerateID("token_")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "token_"))
	assert.Len(t, id, len("token_")+21)

	id, err = utils.GenerateID("", 8)
	assert.NoError(t, err)
	assert.Len(t, id, 8)

	other, err := utils.GenerateID("", 8)
	assert.NoError(t, err)
	assert.NotEqual(t, id, other)
}
