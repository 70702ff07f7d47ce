package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/odra/internal/core/domain"
)

func TestProject_OwningMember(t *testing.T) {
	root := filepath.Join("work", "ws")
	token := domain.Member{Name: "my-token", Root: filepath.Join(root, "token")}
	project := &domain.Project{
		Name:    "ws",
		Root:    root,
		Members: []domain.Member{{Root: root}, token},
	}

	assert.True(t, project.IsWorkspace())

	got, ok := project.OwningMember(domain.Contract{FQN: "my_token::Token"})
	assert.True(t, ok)
	assert.Equal(t, token, got)

	got, ok = project.OwningMember(domain.Contract{FQN: "ws::Flipper"})
	assert.True(t, ok)
	assert.Equal(t, root, got.Root)

	_, ok = project.OwningMember(domain.Contract{FQN: "other::Flipper"})
	assert.False(t, ok)
}

func TestProject_CrateName(t *testing.T) {
	p := &domain.Project{Name: "my-flipper", Members: []domain.Member{{}}}
	assert.Equal(t, "my_flipper", p.CrateName())
	assert.Equal(t, "my-flipper", p.MemberName(domain.Member{}))
	assert.False(t, p.IsWorkspace())
}
