/*
Copyright 2024 The Hooya Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config resolves hooya's environment-variable driven settings,
// shared by the daemon, the web proxy and the CLI tool. Flags, when a
// binary defines them, take precedence over the environment.
package config

import "os"

// Environment variable names recognized across the hooya binaries, per
// spec.md §6's CLI surface.
const (
	EnvEndpoint     = "HOOYAD_ENDPOINT"
	EnvFilestore    = "HOOYAD_FILESTORE"
	EnvDBURI        = "HOOYAD_DB_URI"
	EnvWebProxyAddr = "HOOYA_WEB_PROXY_ENDPOINT"
	EnvPicturesDir  = "XDG_PICTURES_DIR"
)

const (
	defaultEndpoint     = "127.0.0.1:7890"
	defaultWebProxyAddr = "127.0.0.1:7891"
	defaultDBFile       = "hooya.sqlite"
)

// Endpoint is the gRPC Control service address, overridable via
// HOOYAD_ENDPOINT.
func Endpoint() string {
	return getOr(EnvEndpoint, defaultEndpoint)
}

// WebProxyEndpoint is the HTTP proxy's listen/dial address, overridable
// via HOOYA_WEB_PROXY_ENDPOINT.
func WebProxyEndpoint() string {
	return getOr(EnvWebProxyAddr, defaultWebProxyAddr)
}

// FilestorePath is the filestore root directory. There is no built-in
// default: the daemon refuses to start without HOOYAD_FILESTORE set.
func FilestorePath() (string, bool) {
	v := os.Getenv(EnvFilestore)
	return v, v != ""
}

// DBURI is the index connection URI, defaulting to a sqlite file named
// hooya.sqlite under the filestore root if unset.
func DBURI(filestoreRoot string) string {
	if v := os.Getenv(EnvDBURI); v != "" {
		return v
	}
	if filestoreRoot == "" {
		return defaultDBFile
	}
	return filestoreRoot + string(os.PathSeparator) + defaultDBFile
}

// PicturesDir returns XDG_PICTURES_DIR and whether it is set. The CLI's
// add-dir subcommand does not consult it: it always takes its directories
// as arguments.
func PicturesDir() (string, bool) {
	v := os.Getenv(EnvPicturesDir)
	return v, v != ""
}

func getOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
