// SPDX-License-Identifier: MPL-2.0

// Package app is the composition root shared by every command. A Session is
// built once per invocation from the loaded configuration and owns the
// logger, the parse cache, the vehicle registry, and the packaging engine.
// Project files are opened and saved through the Session so that the
// configured defaults apply.
package app
