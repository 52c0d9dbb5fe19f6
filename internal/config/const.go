// Package config implements the directive model of accgen: the four precedence
// tiers, the accessor kinds they apply to, and the decoding of declaration files.
package config

// Global constants for the application.
const (
	Application = "accgen"
	Description = "Generate accessor methods from annotated type declarations"
	WebSite     = "https://github.com/origadmin/accgen"
	UI          = `
   ___  ___________ ____ ___  ____
  / _ |/ ___/ ___/ |/ __/ _ \/ __ \
 / __ / /__/ /__/  / _// __/ / / /
/_/ |_\___/\___/_/|_\___/_/ /_/ /_/
`
)

// Placeholder is the token substituted by naming and documentation templates.
const Placeholder = "{}"
