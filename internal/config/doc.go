// Package config loads the process-wide server configuration from flags and
// environment variables.
//
// Configuration is read exactly once at startup. The API key is mandatory;
// the default sender and reply-to list are optional. A missing sender is not
// a startup error: a tool call that carries no explicit "from" address then
// fails in-band at call time instead.
package config
