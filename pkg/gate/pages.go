package gate

import (
	"fmt"
	"html/template"
	"os"
	"strings"
)

// Built-in pages used when no override file is configured. Override files
// are parsed with html/template and receive the same fields: .Proceed on
// the login page, .Username and .Proceed on the bad-credentials page.
// Substituted values are HTML-escaped; a hostile proceed URL cannot break
// out of the attribute it lands in.
const defaultLoginHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>LOGIN</title>
  </head>
  <body>
    <form action="{{.Action}}" method="post">
      <div class="container">
        <label for="uname"><b>Username</b></label>
        <input type="text" placeholder="Enter Username" name="username" required/>

        <label for="password"><b>Password</b></label>
        <input type="password" placeholder="Enter Password" name="password" required/>

        <input type="hidden" name="proceed" value="{{.Proceed}}" />

        <button type="submit">Login</button>
      </div>
    </form>
  </body>
</html>
`

const defaultBadCredentialsHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>LOGIN FAILED</title>
  </head>
  <body>
    <p>Bad credentials for user <b>{{.Username}}</b>.</p>
    <form action="{{.Action}}" method="post">
      <div class="container">
        <label for="uname"><b>Username</b></label>
        <input type="text" placeholder="Enter Username" name="username" value="{{.Username}}" required/>

        <label for="password"><b>Password</b></label>
        <input type="password" placeholder="Enter Password" name="password" required/>

        <input type="hidden" name="proceed" value="{{.Proceed}}" />

        <button type="submit">Try again</button>
      </div>
    </form>
  </body>
</html>
`

type pageData struct {
	Action   string
	Proceed  string
	Username string
}

// loadPage returns the override file contents when the path names a regular
// file, otherwise the built-in fallback. The file is read on every render
// so an operator can swap the page without restarting.
func loadPage(override, fallback string) (string, error) {
	if override == "" {
		return fallback, nil
	}
	info, err := os.Stat(override)
	if err != nil || !info.Mode().IsRegular() {
		return fallback, nil
	}
	raw, err := os.ReadFile(override)
	if err != nil {
		return "", fmt.Errorf("gate: read page %s: %w", override, err)
	}
	return string(raw), nil
}

func renderPage(name, text string, data pageData) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("gate: parse %s template: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("gate: render %s template: %w", name, err)
	}
	return sb.String(), nil
}

// renderLogin produces the login form with proceed as the hidden
// post-authentication target.
func (g *Gate) renderLogin(proceed string) (string, error) {
	text, err := loadPage(g.cfg.App.LoginPage, defaultLoginHTML)
	if err != nil {
		return "", err
	}
	return renderPage("login", text, pageData{
		Action:  g.routePath("login"),
		Proceed: proceed,
	})
}

// renderBadCredentials produces the login-failure page with the attempted
// username and the original proceed target filled in.
func (g *Gate) renderBadCredentials(username, proceed string) (string, error) {
	text, err := loadPage(g.cfg.App.BadCredentialsPage, defaultBadCredentialsHTML)
	if err != nil {
		return "", err
	}
	return renderPage("bad_credentials", text, pageData{
		Action:   g.routePath("login"),
		Proceed:  proceed,
		Username: username,
	})
}
