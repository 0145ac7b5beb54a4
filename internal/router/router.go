// Package router dispatches /api requests to the handler set of the API
// version named in the URL.
package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SupportedVersionsHeader lists the versions the API serves.
const SupportedVersionsHeader = "api-supported-versions"

// ErrUnsupportedVersion marks a well-formed version token nobody serves.
var ErrUnsupportedVersion = errors.New("unsupported API version")

// UnsupportedVersionError carries the requested token.
type UnsupportedVersionError struct {
	Token string
	Path  string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("Cannot resolve %s: %s %q", e.Path, ErrUnsupportedVersion, e.Token)
}

func (e *UnsupportedVersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// Router collects per-version route registrations and mounts them under a
// common prefix.
type Router struct {
	app        *fiber.App
	prefix     string
	def        Version
	versions   []Version
	registrars map[Version][]func(fiber.Router)
}

// New creates a Router for app. Requests without a version token are served
// by def.
func New(app *fiber.App, prefix string, def Version) *Router {
	return &Router{
		app:        app,
		prefix:     prefix,
		def:        def,
		registrars: make(map[Version][]func(fiber.Router)),
	}
}

// Register adds a route registration for version v.
func (r *Router) Register(v Version, register func(fiber.Router)) {
	if _, ok := r.registrars[v]; !ok {
		r.versions = append(r.versions, v)
	}
	r.registrars[v] = append(r.registrars[v], register)
}

// Supported returns the registered versions in registration order.
func (r *Router) Supported() []Version {
	out := make([]Version, len(r.versions))
	copy(out, r.versions)
	return out
}

// Mount installs every registered version, the unversioned default and the
// unsupported-version catch-all. Call it once, after all Register calls.
func (r *Router) Mount() {
	api := r.app.Group(r.prefix, reportVersions(r.Supported()))

	for _, v := range r.versions {
		for _, segment := range v.Segments() {
			group := api.Group("/" + segment)
			for _, register := range r.registrars[v] {
				register(group)
			}
		}
	}

	for _, register := range r.registrars[r.def] {
		register(api)
	}

	api.All("/:version/*", r.resolveUnmatched)
}

func reportVersions(versions []Version) fiber.Handler {
	names := make([]string, len(versions))
	for i, v := range versions {
		names[i] = v.String()
	}
	header := strings.Join(names, ", ")
	return func(c *fiber.Ctx) error {
		c.Set(SupportedVersionsHeader, header)
		return c.Next()
	}
}

// resolveUnmatched runs only when no versioned route matched. A token
// ParseVersion accepts has the same shape as a mounted segment, so an
// accepted token nobody registered fails at routing level; anything else
// falls through to fiber's own unmatched-route handling.
func (r *Router) resolveUnmatched(c *fiber.Ctx) error {
	token := c.Params("version")
	v, err := ParseVersion(token)
	if err != nil || r.supports(v) {
		return c.Next()
	}
	return &UnsupportedVersionError{Token: strings.Clone(token), Path: strings.Clone(c.Path())}
}

func (r *Router) supports(v Version) bool {
	_, ok := r.registrars[v]
	return ok
}
