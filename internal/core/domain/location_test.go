package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/odra/internal/core/domain"
)

func TestResolveLocal(t *testing.T) {
	root := t.TempDir()

	assert.Equal(t,
		domain.LocalLocation{Path: filepath.Join(root, "..", "odra")},
		domain.ResolveLocal(domain.LocalLocation{Path: filepath.Join("..", "odra")}, root),
	)

	abs := domain.LocalLocation{Path: filepath.Join(root, "odra")}
	assert.Equal(t, abs, domain.ResolveLocal(abs, "/elsewhere"))

	remote := domain.RemoteLocation{Repository: "https://github.com/odradev/odra", Branch: "release/1.1.0"}
	assert.Equal(t, remote, domain.ResolveLocal(remote, root))
}

func TestOdraLocation_String(t *testing.T) {
	assert.Equal(t, "local path ../odra", domain.LocalLocation{Path: "../odra"}.String())
	assert.Equal(t, "git https://github.com/odradev/odra", domain.RemoteLocation{Repository: "https://github.com/odradev/odra"}.String())
	assert.Equal(t, "git x (branch dev)", domain.RemoteLocation{Repository: "x", Branch: "dev"}.String())
	assert.Equal(t, "crates.io 1.1.0", domain.CratesIOLocation{Version: "1.1.0"}.String())
}
