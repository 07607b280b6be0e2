package recon

import "strings"

// CommonPaths returns the well-known paths probed after the crawl, in
// probe order.
func CommonPaths() []string {
	return []string{
		// Admin panels
		"/admin", "/admin/login", "/admin/dashboard", "/dashboard",

		// Accounts
		"/user", "/users", "/profile", "/account", "/settings",

		// API roots
		"/api", "/api/v1", "/api/v2", "/api/users", "/api/admin",

		// Auth flows
		"/login", "/logout", "/register", "/signup", "/signin",

		// Config & environment exposure
		"/config", "/configuration", "/env", "/.env",
	}
}

// isAdminPath reports whether a probed path looks like an admin panel.
func isAdminPath(path string) bool {
	return strings.Contains(strings.ToLower(path), "admin")
}
