// Package render expands fetched templates with named parameters.
package render

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/zerr"
)

// Template names published by the framework.
const (
	WasmSourceBuilder = "wasm_source_builder.rs"
	Module            = "module.rs"
	ModuleRegister    = "module_register.rs"
)

// Parameter names available to templates. A template references one as #name.
const (
	ParamContractFQN  = "contract_fqn"
	ParamContractName = "contract_name"
	ParamBackendName  = "backend_name"
	ParamModuleName   = "module_name"
)

const placeholderPrefix = '#'

var knownParams = []string{ParamContractFQN, ParamContractName, ParamBackendName, ParamModuleName}

// placeholderLike matches snake_case words, the shape of every parameter name.
var placeholderLike = regexp.MustCompile(`^[a-z][a-z0-9]*_[a-z0-9_]*`)

// Params maps parameter names to their values.
type Params map[string]string

// Render replaces every #name placeholder in body in a single left-to-right pass.
// At each '#' the longest known parameter name wins, so #contract_name_wasm
// expands contract_name and keeps the suffix. Substituted values are never rescanned.
// A known parameter missing from params, or an unknown snake_case placeholder,
// is an error. Other uses of '#', like #[derive] or r#"raw"#, are copied as is.
func Render(name, body string, params Params) (string, error) {
	names := paramNames(params)

	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); {
		j := strings.IndexByte(body[i:], placeholderPrefix)
		if j < 0 {
			b.WriteString(body[i:])
			break
		}
		j += i
		b.WriteString(body[i:j])
		rest := body[j+1:]

		if key := longestPrefix(rest, names); key != "" {
			value, ok := params[key]
			if !ok {
				return "", renderFailed(zerr.With(zerr.New("missing value for parameter #"+key), "parameter", key), name)
			}
			b.WriteString(value)
			i = j + 1 + len(key)
			continue
		}

		if !isIdentByte(body, j-1) {
			if word := placeholderLike.FindString(rest); word != "" {
				return "", renderFailed(zerr.With(zerr.New("unknown parameter #"+word), "parameter", word), name)
			}
		}
		b.WriteByte(placeholderPrefix)
		i = j + 1
	}
	return b.String(), nil
}

// paramNames returns the known parameter names plus any extra keys of params, longest first.
func paramNames(params Params) []string {
	seen := make(map[string]struct{}, len(knownParams)+len(params))
	names := make([]string, 0, len(knownParams)+len(params))
	add := func(n string) {
		if _, ok := seen[n]; ok || n == "" {
			return
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	for _, n := range knownParams {
		add(n)
	}
	for n := range params {
		add(n)
	}
	sort.Slice(names, func(a, b int) bool {
		if len(names[a]) != len(names[b]) {
			return len(names[a]) > len(names[b])
		}
		return names[a] < names[b]
	})
	return names
}

func longestPrefix(s string, names []string) string {
	for _, n := range names {
		if strings.HasPrefix(s, n) {
			return n
		}
	}
	return ""
}

// isIdentByte reports whether body[i] can be part of a rust identifier, as in r#type.
func isIdentByte(body string, i int) bool {
	if i < 0 {
		return false
	}
	c := body[i]
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func renderFailed(err error, name string) error {
	return errors.Join(domain.ErrParseFailure, zerr.With(zerr.Wrap(err, domain.ErrTemplateRenderFailed.Error()), "template", name))
}
