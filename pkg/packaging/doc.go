// SPDX-License-Identifier: MPL-2.0

// Package packaging builds a mod archive from a project.
//
// A build runs four steps: validate the project against the registry and the
// filesystem, refuse to overwrite an existing archive, stage every texture and
// generated definition file, and write the ZIP to a temporary file that is
// moved into place only when complete. The archive layout is:
//
//	vehicles/<id>/<texture file>
//	vehicles/<id>/skins.jbeam
//	vehicles/<id>/skins.materials.json
//	mod_info/<mod name>/info.json
package packaging
