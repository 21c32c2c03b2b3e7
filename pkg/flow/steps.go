package flow

import (
	"strings"

	"github.com/omniops/flowcheck/pkg/apicheck"
	"github.com/omniops/flowcheck/pkg/artifactcheck"
	"github.com/omniops/flowcheck/pkg/check"
)

// Steps declares the fixed verification catalog in execution order.
// Step names are stable transcript identifiers; renaming one breaks
// downstream log scraping.
func Steps(cfg Config) []Step {
	steps := []Step{
		{Name: "home: page loads", Run: checkHome},
		{Name: "login: form elements", Run: checkLoginForm},
		{Name: "dashboard: unauthenticated redirect", Run: checkDashboardRedirect},
		{Name: "onboarding: organization creation", Run: checkOnboarding},
	}

	for _, endpoint := range cfg.APIEndpoints {
		steps = append(steps, apiStep(endpoint))
	}

	steps = append(steps,
		Step{Name: "team: route exists", Run: checkTeamRoute},
		Step{Name: "dashboard: page structure", Run: checkDashboardStructure},
		Step{Name: "routes: middleware protection", Run: checkProtectedRoutes},
		Step{Name: "pages: no runtime errors", Run: checkRuntimeErrors},
		Step{Name: "build: artifacts present", Run: checkBuildArtifacts},
	)

	return steps
}

func checkHome(env *Env) check.Result {
	result := check.Result{Name: "home: page loads"}

	if err := env.Page.Navigate("/"); err != nil {
		return result.Failf("navigation failed: %v", err)
	}
	env.Page.Screenshot("homepage.png")

	title := env.Page.Title()
	url := env.Page.URL()
	result.AddDetailf("title: %s", title)

	if title == "" {
		return result.Failf("page has no title")
	}
	if strings.Contains(strings.ToLower(url), "error") {
		return result.Failf("url indicates error state: %s", url)
	}
	return result.Pass()
}

func checkLoginForm(env *Env) check.Result {
	result := check.Result{Name: "login: form elements"}

	if err := env.Page.Navigate("/login"); err != nil {
		return result.Failf("navigation failed: %v", err)
	}
	env.Page.Screenshot("login.png")

	hasEmail := env.Page.Has(`input[type="email"]`)
	hasPassword := env.Page.Has(`input[type="password"]`)
	hasSubmit := env.Page.Has(`button[type="submit"]`) || env.Page.HasText("button", "Sign in")

	result.AddDetailf("email: %t, password: %t, submit: %t", hasEmail, hasPassword, hasSubmit)

	if !hasEmail || !hasPassword || !hasSubmit {
		return result.Failf("login form is incomplete")
	}
	return result.Pass()
}

func checkDashboardRedirect(env *Env) check.Result {
	result := check.Result{Name: "dashboard: unauthenticated redirect"}

	if err := env.Page.Navigate("/dashboard"); err != nil {
		return result.Failf("navigation failed: %v", err)
	}
	env.Page.Screenshot("dashboard-unauth.png")

	url := env.Page.URL()
	result.AddDetailf("url: %s", url)

	if redirectedToAuth(url) || env.Page.Has(`input[type="email"]`) {
		return result.Pass()
	}
	return result.Failf("dashboard reachable without authentication")
}

func checkOnboarding(env *Env) check.Result {
	result := check.Result{Name: "onboarding: organization creation"}

	if err := env.Page.Navigate("/onboarding"); err != nil {
		return result.Failf("navigation failed: %v", err)
	}
	env.Page.Screenshot("onboarding.png")

	hasOrgInput := env.Page.Has(`input[name="organizationName"]`) ||
		env.Page.Has(`input[placeholder*="organization"]`)
	hasCreate := env.Page.HasText("button", "Create")

	result.AddDetailf("org input: %t, create button: %t", hasOrgInput, hasCreate)

	if hasOrgInput || hasCreate {
		return result.Pass()
	}

	content, err := env.Page.Content()
	if err != nil {
		return result.Failf("failed to read page content: %v", err)
	}
	if strings.Contains(strings.ToLower(content), "organization") {
		return result.Pass()
	}
	return result.Failf("no organization creation surface found")
}

func apiStep(endpoint string) Step {
	name := "api: " + endpoint
	return Step{
		Name: name,
		Run: func(env *Env) check.Result {
			c := apicheck.Check{
				Name:   name,
				URL:    strings.TrimSuffix(env.Cfg.BaseURL, "/") + endpoint,
				Client: env.Client,
			}
			return c.Run()
		},
	}
}

func checkTeamRoute(env *Env) check.Result {
	result := check.Result{Name: "team: route exists"}

	if err := env.Page.Navigate("/dashboard/team"); err != nil {
		return result.Failf("navigation failed: %v", err)
	}
	env.Page.Screenshot("team-page.png")

	url := env.Page.URL()
	result.AddDetailf("url: %s", url)

	if env.Page.HasText("h1", "Team") || redirectedToAuth(url) || strings.Contains(url, "onboarding") {
		return result.Pass()
	}
	return result.Failf("team route neither renders nor redirects")
}

func checkDashboardStructure(env *Env) check.Result {
	result := check.Result{Name: "dashboard: page structure"}

	if err := env.Page.Navigate("/dashboard"); err != nil {
		return result.Failf("navigation failed: %v", err)
	}
	env.Page.Screenshot("dashboard-full.png")

	hasNavigation := env.Page.Has("nav") || env.Page.Has("aside") || env.Page.Has(`[role="navigation"]`)
	hasContent := env.Page.Has("main") || env.Page.Has(`[role="main"]`)

	result.AddDetailf("nav: %t, main: %t", hasNavigation, hasContent)

	if hasNavigation || hasContent || strings.Contains(env.Page.URL(), "login") {
		return result.Pass()
	}
	return result.Failf("dashboard has no structural landmarks")
}

// checkProtectedRoutes sweeps the privileged routes and fails on the first
// one reachable without authentication.
func checkProtectedRoutes(env *Env) check.Result {
	result := check.Result{Name: "routes: middleware protection"}
	result.AddDetailf("Tested %d routes", len(env.Cfg.ProtectedRoutes))

	for _, route := range env.Cfg.ProtectedRoutes {
		if err := env.Page.Navigate(route); err != nil {
			return result.Failf("navigation failed for %s: %v", route, err)
		}

		url := env.Page.URL()
		protected := redirectedToAuth(url) ||
			strings.Contains(url, "onboarding") ||
			env.Page.Has(`input[type="email"]`)
		if !protected {
			return result.Failf("unprotected route: %s", route)
		}
	}

	return result.Pass()
}

// checkRuntimeErrors visits the top-level pages while the session's
// exception listener records uncaught errors.
func checkRuntimeErrors(env *Env) check.Result {
	result := check.Result{Name: "pages: no runtime errors"}

	env.Page.ResetPageErrors()

	for _, route := range env.Cfg.SweepRoutes {
		if err := env.Page.Navigate(route); err != nil {
			return result.Failf("navigation failed for %s: %v", route, err)
		}
	}

	errs := env.Page.PageErrors()
	result.AddDetailf("errors found: %d", len(errs))

	if len(errs) == 0 {
		return result.Pass()
	}

	const maxShown = 5
	for i, e := range errs {
		if i == maxShown {
			break
		}
		result.AddDetail(e)
	}
	return result.Failf("%d runtime errors across %d pages", len(errs), len(env.Cfg.SweepRoutes))
}

func checkBuildArtifacts(env *Env) check.Result {
	result := check.Result{Name: "build: artifacts present"}

	dir := artifactcheck.Check{Path: env.Cfg.BuildDir, ExpectDir: true, FS: env.FS}
	if dirResult := dir.Run(); !dirResult.OK() {
		result.Details = append(result.Details, dirResult.Details...)
		return result.Failf("build directory missing: %s", env.Cfg.BuildDir)
	}

	marker := artifactcheck.Check{Path: env.Cfg.BuildMarker, NotEmpty: true, FS: env.FS}
	if markerResult := marker.Run(); !markerResult.OK() {
		result.Details = append(result.Details, markerResult.Details...)
		return result.Failf("build marker missing: %s", env.Cfg.BuildMarker)
	}

	result.AddDetailf("dir: %s", env.Cfg.BuildDir)
	result.AddDetailf("marker: %s", env.Cfg.BuildMarker)
	return result.Pass()
}

// redirectedToAuth reports whether a resolved URL indicates a login or
// auth redirect.
func redirectedToAuth(url string) bool {
	return strings.Contains(url, "login") || strings.Contains(url, "auth")
}
