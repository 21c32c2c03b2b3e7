package flow

// Config fixes the verification surface for one run: which origin to
// drive, which routes to sweep, and where the build output should be.
type Config struct {
	BaseURL         string   // application origin
	APIEndpoints    []string // probed for success-or-auth-required responses
	ProtectedRoutes []string // must redirect unauthenticated visitors
	SweepRoutes     []string // visited during the runtime-error sweep
	BuildDir        string   // build output directory
	BuildMarker     string   // completion marker inside the build dir
}

// DefaultConfig returns the route surface of a local dev instance.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:3000",
		APIEndpoints: []string{
			"/api/auth/me",
			"/api/organizations",
		},
		ProtectedRoutes: []string{
			"/dashboard/analytics",
			"/dashboard/conversations",
			"/dashboard/settings",
		},
		SweepRoutes: []string{
			"/",
			"/login",
			"/dashboard",
			"/onboarding",
		},
		BuildDir:    ".next",
		BuildMarker: ".next/BUILD_ID",
	}
}
