// Package auth resolves the bearer token the client attaches to every
// request. The daemon writes its token to a well-known file at startup;
// this package finds it.
package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenFileName is the well-known file the daemon writes its token to.
const TokenFileName = ".gics_token"

// TokenProvider supplies the bearer token for outgoing requests. An empty
// string means requests are sent without a token.
type TokenProvider interface {
	Token() string
}

// StaticTokenProvider returns a fixed token verbatim. An explicitly
// configured token always takes this path; no files are probed.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider wraps an explicit token value.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// Token returns the configured token.
func (p *StaticTokenProvider) Token() string { return p.token }

// FileTokenProvider discovers the token by probing a fixed list of
// candidate files in order: the current directory, the home directory, and
// the parent directory. The first existing file wins and its trimmed
// contents are cached for the provider's lifetime; the probe never runs
// twice.
type FileTokenProvider struct {
	candidates []string

	once  sync.Once
	token string
}

// NewFileTokenProvider builds a provider over the default candidate paths.
func NewFileTokenProvider() *FileTokenProvider {
	candidates := []string{TokenFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, TokenFileName))
	}
	candidates = append(candidates, filepath.Join("..", TokenFileName))

	return &FileTokenProvider{candidates: candidates}
}

// NewFileTokenProviderFromPaths builds a provider over explicit candidate
// paths, probed in order. Used by tests and callers with non-standard
// layouts.
func NewFileTokenProviderFromPaths(paths ...string) *FileTokenProvider {
	return &FileTokenProvider{candidates: paths}
}

// Token resolves the token, probing the candidate files on first use only.
func (p *FileTokenProvider) Token() string {
	p.once.Do(func() {
		for _, path := range p.candidates {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			p.token = strings.TrimSpace(string(data))
			return
		}
	})
	return p.token
}
