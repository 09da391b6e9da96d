// Package trust records which config files the user has explicitly allowed
// the shell hook to export.
//
// The record lives at $XDG_CONFIG_HOME/json_env/trusted.json:
//
//	{
//	  "version": 1,
//	  "trusted": ["/home/me/project/.env.json"]
//	}
//
// Paths are stored canonicalised (absolute, symlinks resolved). The list is
// append-only: there is no revocation.
//
// Writers serialise on an flock held on trusted.json.lock and replace the
// record with an atomic rename, so concurrent shells never observe a torn
// file. Readers take no lock.
package trust
