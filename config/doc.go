// Package config loads the generator configuration from YAML and applies
// defaults. The configuration replaces any process wide state: the stubs
// root, the project directory, the template tags and the generator kinds
// are all carried in a Config value.
package config
