package flow

import "strings"

// pageState scripts what the fake page looks like after navigating to one
// path: resolved URL, title, which selectors exist, and any runtime errors
// the page throws while loading.
type pageState struct {
	url       string // resolved URL (default: base + path)
	title     string
	selectors map[string]bool
	texts     map[string]bool // "selector|text"
	content   string
	errs      []string
	navErr    error
}

// fakePage is a scripted Pager/Session for tests. It records every
// navigation and screenshot so ordering assertions are possible.
type fakePage struct {
	base        string
	states      map[string]pageState
	current     pageState
	currentURL  string
	pageErrors  []string
	visited     []string
	screenshots []string
	closed      bool
}

func newFakePage(base string, states map[string]pageState) *fakePage {
	return &fakePage{base: base, states: states}
}

func (f *fakePage) Navigate(path string) error {
	f.visited = append(f.visited, path)
	state := f.states[path]
	if state.navErr != nil {
		return state.navErr
	}
	f.current = state
	f.currentURL = state.url
	if f.currentURL == "" {
		f.currentURL = strings.TrimSuffix(f.base, "/") + path
	}
	f.pageErrors = append(f.pageErrors, state.errs...)
	return nil
}

func (f *fakePage) URL() string   { return f.currentURL }
func (f *fakePage) Title() string { return f.current.title }

func (f *fakePage) Has(selector string) bool {
	return f.current.selectors[selector]
}

func (f *fakePage) HasText(selector, text string) bool {
	return f.current.texts[selector+"|"+text]
}

func (f *fakePage) Count(selector string) int {
	if f.current.selectors[selector] {
		return 1
	}
	return 0
}

func (f *fakePage) Content() (string, error) { return f.current.content, nil }

func (f *fakePage) Screenshot(name string) {
	f.screenshots = append(f.screenshots, name)
}

func (f *fakePage) PageErrors() []string {
	out := make([]string, len(f.pageErrors))
	copy(out, f.pageErrors)
	return out
}

func (f *fakePage) ResetPageErrors() { f.pageErrors = nil }

func (f *fakePage) Close() { f.closed = true }

// healthyApp scripts a target where every check passes.
func healthyApp() map[string]pageState {
	loginForm := map[string]bool{
		`input[type="email"]`:    true,
		`input[type="password"]`: true,
		`button[type="submit"]`:  true,
	}
	redirectedLogin := pageState{
		url:       "http://localhost:3000/login",
		title:     "Sign in",
		selectors: loginForm,
	}

	return map[string]pageState{
		"/": {
			title:     "Omniops",
			selectors: map[string]bool{"nav": true, "main": true},
		},
		"/login": {
			title:     "Sign in",
			selectors: loginForm,
		},
		"/dashboard":               redirectedLogin,
		"/dashboard/team":          redirectedLogin,
		"/dashboard/analytics":     redirectedLogin,
		"/dashboard/conversations": redirectedLogin,
		"/dashboard/settings":      redirectedLogin,
		"/onboarding": {
			title:     "Create your organization",
			selectors: map[string]bool{`input[name="organizationName"]`: true},
			texts:     map[string]bool{"button|Create": true},
			content:   "<h1>Create your organization</h1>",
		},
	}
}
