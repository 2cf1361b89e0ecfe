// Package theme loads gradient themes from YAML, keeps the built-in
// catalogue and compiles definitions into gradients.
package theme
