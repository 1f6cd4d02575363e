// Package config loads the numrace server configuration from the
// environment. Every knob has a default that works for local development;
// flags in main override individual fields, and a .env file is honored when
// present.
package config
