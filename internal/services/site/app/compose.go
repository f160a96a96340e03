// Package app composes site modules into one root handler.
package app

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/httpx"
	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Dependencies module.Dependencies
	PageModules  []module.Module
	APIModules   []module.Module
}

// Compose builds a root HTTP handler from module groups. Page modules own
// browser routes; API modules mount under /api/ and reject cross-site
// mutations.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.PageModules {
		if feature == nil {
			return nil, fmt.Errorf("page module is nil")
		}
		if err := mountPageModule(root, feature, input.Dependencies, seen); err != nil {
			return nil, err
		}
	}

	for _, feature := range input.APIModules {
		if feature == nil {
			return nil, fmt.Errorf("api module is nil")
		}
		if err := mountAPIModule(root, feature, input.Dependencies, seen); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func mountPageModule(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string) error {
	mount, prefix, err := resolveMount(feature, deps)
	if err != nil {
		return err
	}
	if isAPIPrefix(prefix) {
		return fmt.Errorf("module %q has api prefix %q in page group", feature.ID(), prefix)
	}
	if err := mountModule(root, feature, mount, prefix, seen, nil); err != nil {
		return err
	}
	if alias := slashlessPrefixAlias(prefix); alias != "" {
		return mountModule(root, feature, mount, alias, seen, nil)
	}
	return nil
}

func mountAPIModule(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string) error {
	mount, prefix, err := resolveMount(feature, deps)
	if err != nil {
		return err
	}
	if !isAPIPrefix(prefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.APIPrefix, prefix)
	}
	return mountModule(root, feature, mount, prefix, seen, requireSameOriginMutation)
}

func isAPIPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.APIPrefix)
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, string, error) {
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := strings.TrimSpace(mount.Prefix)
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// slashlessPrefixAlias lets /blog reach the module mounted at /blog/
// without the mux redirect.
func slashlessPrefixAlias(prefix string) string {
	if prefix == routepath.Root || !strings.HasSuffix(prefix, "/") {
		return ""
	}
	return strings.TrimSuffix(prefix, "/")
}

func requireSameOriginMutation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isMutationMethod(r) && !sameOrigin(r) {
			_ = httpx.WriteJSONError(w, http.StatusForbidden, "cross-site request rejected")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isMutationMethod(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// sameOrigin accepts requests whose Origin matches the Host, and requests
// without browser origin metadata.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return !strings.EqualFold(r.Header.Get("Sec-Fetch-Site"), "cross-site")
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	return strings.EqualFold(parsed.Host, r.Host)
}
