// Package manager implements database lifecycle operations (existence
// checks and CREATE DATABASE) against the maintenance database.
package manager
